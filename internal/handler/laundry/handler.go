package laundry

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/laundry"
)

type Handler struct {
	svc laundry.LaundryServicer
}

func NewHandler(svc laundry.LaundryServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, allow handler.RoleGuard) {
	write := allow(model.RoleAdmin, model.RoleNurse)

	items := r.Group("/laundry")
	{
		items.GET("", h.ListItems)
		items.POST("", write, h.CreateItem)
		items.PUT("/:id", write, h.UpdateItem)
		items.DELETE("/:id", write, h.DeleteItem)
	}
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req model.LaundryRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	item := req.ToModel()
	if err := h.svc.CreateItem(c.Request.Context(), item); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, item.ID, "Laundry item added successfully")
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	var req model.LaundryRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	item := req.ToModel()
	item.ID = id
	if err := h.svc.UpdateItem(c.Request.Context(), item); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Laundry item updated successfully")
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteItem(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Laundry item deleted successfully")
}
