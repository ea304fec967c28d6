package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hritamkar/library-management/internal/pkg/logger"
)

// SubscriptionHandler answers the multi-tenant provisioning callbacks. There
// is no tenant isolation in this deployment, so subscribe and unsubscribe
// only acknowledge the request.
type SubscriptionHandler struct {
	log *logger.Logger
}

func NewSubscriptionHandler(log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{log: log.With("handler", "SubscriptionHandler")}
}

// GET /mt/v1.0/subscriptions/dependencies
func (h *SubscriptionHandler) GetDependencies(c *gin.Context) {
	c.JSON(http.StatusOK, []any{})
}

// PUT /mt/v1.0/subscriptions/tenants/:tenantId
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	tenantID := c.Param("tenantId")
	h.log.Info("Tenant subscribed", "tenant_id", tenantID)
	c.String(http.StatusOK, "")
}

// DELETE /mt/v1.0/subscriptions/tenants/:tenantId
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	tenantID := c.Param("tenantId")
	h.log.Info("Tenant unsubscribed", "tenant_id", tenantID)
	c.Status(http.StatusNoContent)
}
