package payroll

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/payroll"
)

type Handler struct {
	svc payroll.PayrollServicer
}

func NewHandler(svc payroll.PayrollServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, allow handler.RoleGuard) {
	payments := r.Group("/payroll", allow(model.RoleAdmin))
	{
		payments.GET("", h.ListPayments)
		payments.POST("", h.RecordPayment)
	}
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var req model.CreatePayrollRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	entry := req.ToModel()
	if err := h.svc.RecordPayment(c.Request.Context(), entry); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, entry.ID, "Payment recorded successfully")
}

func (h *Handler) ListPayments(c *gin.Context) {
	payments, err := h.svc.ListPayments(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
