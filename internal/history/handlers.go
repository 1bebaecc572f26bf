package history

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Rajeshwarantask/Daily-Task-Monitor/internal/errors"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/logger"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
)

// Handler handles HTTP requests for task history.
type Handler struct {
	store  Store
	logger *logger.Logger
}

// NewHandler creates a new history handler.
func NewHandler(store Store, logger *logger.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// SaveRequest is the body of POST /api/history/save.
type SaveRequest struct {
	UserID      string       `json:"userId" binding:"required"`
	Task        routine.Task `json:"task" binding:"required"`
	CompletedAt time.Time    `json:"completedAt"`
}

// RegisterRoutes attaches the history routes to the router group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/history/save", h.Save)
	api.GET("/history/user/:userId", h.ByUser)
}

// Save handles POST /api/history/save.
func (h *Handler) Save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "userId and task are required", nil)
		return
	}
	if req.CompletedAt.IsZero() {
		req.CompletedAt = time.Now()
	}

	// Household members are identified by name, so the user ID doubles as
	// the acting member for log enrichment.
	ctx := logger.WithUserName(c.Request.Context(), req.UserID)
	log := h.logger.WithComponent("history_handler")

	entry := &Entry{
		UserID:      req.UserID,
		Task:        req.Task,
		CompletedAt: req.CompletedAt,
	}
	if err := h.store.Save(ctx, entry); err != nil {
		log.LogError(ctx, err, "failed to save history entry")
		apierrors.AbortWithInternal(c, "failed to save history", nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "History saved"})
}

// ByUser handles GET /api/history/user/:userId. A user with no recorded
// completions gets a 404.
func (h *Handler) ByUser(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context()).WithComponent("history_handler")

	userID := c.Param("userId")
	if userID == "" {
		apierrors.AbortWithBadRequest(c, "userId parameter is required", nil)
		return
	}

	entries, err := h.store.ByUser(c.Request.Context(), userID)
	if err != nil {
		log.Error("failed to query history",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		apierrors.AbortWithInternal(c, "failed to query history", nil)
		return
	}
	if len(entries) == 0 {
		apierrors.AbortWithNotFound(c, "No history found for user", map[string]interface{}{
			"userId": userID,
		})
		return
	}

	c.JSON(http.StatusOK, entries)
}
