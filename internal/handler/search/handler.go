package search

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/service/search"
)

type Handler struct {
	svc search.SearchServicer
}

func NewHandler(svc search.SearchServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, _ handler.RoleGuard) {
	r.GET("/search", h.Search)
}

// Search always answers 200 with all three buckets, empty for short queries.
func (h *Handler) Search(c *gin.Context) {
	result, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
