package room

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/room"
)

type Handler struct {
	svc room.RoomServicer
}

func NewHandler(svc room.RoomServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, allow handler.RoleGuard) {
	write := allow(model.RoleAdmin, model.RoleReceptionist)

	rooms := r.Group("/rooms")
	{
		rooms.GET("", h.ListRooms)
		rooms.POST("", write, h.CreateRoom)
		rooms.PUT("/:id", write, h.UpdateRoom)
		rooms.DELETE("/:id", write, h.DeleteRoom)
	}
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req model.RoomRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	rm := req.ToModel()
	if err := h.svc.CreateRoom(c.Request.Context(), rm); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, rm.ID, "Room added successfully")
}

func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.svc.ListRooms(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	var req model.RoomRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	rm := req.ToModel()
	rm.ID = id
	if err := h.svc.UpdateRoom(c.Request.Context(), rm); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Room updated successfully")
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteRoom(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Room deleted successfully")
}
