package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/admin"
)

type Handler struct {
	svc admin.AdminServicer
}

func NewHandler(svc admin.AdminServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, allow handler.RoleGuard) {
	tables := r.Group("/admin/tables", allow(model.RoleAdmin))
	{
		tables.GET("", h.ListTables)
		tables.GET("/:name", h.BrowseTable)
	}
}

func (h *Handler) ListTables(c *gin.Context) {
	tables, err := h.svc.ListTables(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *Handler) BrowseTable(c *gin.Context) {
	rows, err := h.svc.BrowseTable(c.Request.Context(), c.Param("name"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows.Rows)
}
