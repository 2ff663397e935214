package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/service/dashboard"
)

type Handler struct {
	svc dashboard.DashboardServicer
}

func NewHandler(svc dashboard.DashboardServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, _ handler.RoleGuard) {
	r.GET("/dashboard/stats", h.Stats)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
