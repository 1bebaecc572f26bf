package subscription

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Rajeshwarantask/Daily-Task-Monitor/internal/errors"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/logger"
)

// Handler handles HTTP requests for push registrations.
type Handler struct {
	store  Store
	logger *logger.Logger
}

// NewHandler creates a new subscription handler.
func NewHandler(store Store, logger *logger.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// SaveRequest is the body of POST /api/subscription/save.
type SaveRequest struct {
	Subscription json.RawMessage `json:"subscription"`
	UserName     string          `json:"userName"`
}

// RegisterRoutes attaches the subscription routes to the router group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/subscription/save", h.Save)
}

// Save handles POST /api/subscription/save.
func (h *Handler) Save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Subscription) == 0 || string(req.Subscription) == "null" {
		apierrors.AbortWithBadRequest(c, "No subscription found", nil)
		return
	}

	ctx := logger.WithUserName(c.Request.Context(), req.UserName)
	log := h.logger.WithComponent("subscription_handler")

	sub := &Subscription{
		Payload:  string(req.Subscription),
		UserName: req.UserName,
	}
	if err := h.store.Save(ctx, sub); err != nil {
		log.LogError(ctx, err, "failed to save subscription")
		apierrors.AbortWithInternal(c, "failed to save subscription", nil)
		return
	}

	log.WithContext(ctx).Info("push subscription created",
		slog.String("subscription_id", sub.ID))
	c.JSON(http.StatusCreated, gin.H{"message": "Saved"})
}
