package remindertime

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Rajeshwarantask/Daily-Task-Monitor/internal/errors"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/logger"
)

// Handler handles HTTP requests for reminder-time configuration.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new reminder-time handler.
func NewHandler(service *Service, logger *logger.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// UpdateRequest is the body of POST /api/reminder-time.
type UpdateRequest struct {
	Morning string `json:"morning" binding:"required"`
	Night   string `json:"night" binding:"required"`
}

// RegisterRoutes attaches the reminder-time routes to the router group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/reminder-time", h.GetTimes)
	api.POST("/reminder-time", h.UpdateTimes)
}

// GetTimes handles GET /api/reminder-time. Defaulted records are created on
// the first call.
func (h *Handler) GetTimes(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context()).WithComponent("remindertime_handler")

	times, err := h.service.Get(c.Request.Context())
	if err != nil {
		log.Error("failed to read reminder times", slog.String("error", err.Error()))
		apierrors.AbortWithInternal(c, "failed to read reminder times", nil)
		return
	}

	c.JSON(http.StatusOK, []ReminderTime{times.Morning, times.Evening})
}

// UpdateTimes handles POST /api/reminder-time. A successful update always
// triggers a reschedule.
func (h *Handler) UpdateTimes(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context()).WithComponent("remindertime_handler")

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "morning and night times are required", nil)
		return
	}

	_, err := h.service.Set(c.Request.Context(), req.Morning, req.Night)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			apierrors.AbortWithBadRequest(c, verr.Error(), map[string]interface{}{
				"field": verr.Field,
				"value": verr.Value,
			})
			return
		}
		log.Error("failed to update reminder times", slog.String("error", err.Error()))
		apierrors.AbortWithInternal(c, "failed to update reminder times", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
