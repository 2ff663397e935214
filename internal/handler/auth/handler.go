package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/auth"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
)

type Handler struct {
	svc auth.AuthServicer
}

func NewHandler(svc auth.AuthServicer) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts login. The limiter runs before the body is read.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup, limiter gin.HandlerFunc) {
	r.POST("/auth/login", limiter, h.Login)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, _ handler.RoleGuard) {
	r.GET("/auth/me", h.Me)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.InvalidCredentials(err))
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Me(c *gin.Context) {
	session, err := h.svc.Me(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
