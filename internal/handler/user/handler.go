package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/user"
)

type Handler struct {
	svc user.UserServicer
}

func NewHandler(svc user.UserServicer) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes exposes staff management to admins. Profile updates are open
// to every session; the service limits non-admins to their own account.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, allow handler.RoleGuard) {
	users := r.Group("/users")
	{
		users.GET("", allow(model.RoleAdmin), h.ListUsers)
		users.POST("", allow(model.RoleAdmin), h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", allow(model.RoleAdmin), h.DeleteUser)
	}
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	u := req.ToModel()
	if err := h.svc.CreateUser(c.Request.Context(), u, req.Password); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, u.ID, "User created successfully")
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	if err := h.svc.UpdateUser(c.Request.Context(), id, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "User updated successfully")
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "User deleted successfully")
}
