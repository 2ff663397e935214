package invoice

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/invoice"
)

type Handler struct {
	svc invoice.InvoiceServicer
}

func NewHandler(svc invoice.InvoiceServicer) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes limits billing to front-office roles.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, allow handler.RoleGuard) {
	invoices := r.Group("/invoices", allow(model.RoleAdmin, model.RoleReceptionist))
	{
		invoices.GET("", h.ListInvoices)
		invoices.POST("", h.CreateInvoice)
		invoices.PUT("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) CreateInvoice(c *gin.Context) {
	var req model.CreateInvoiceRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	inv, submittedTotal := req.ToModel()
	if err := h.svc.CreateInvoice(c.Request.Context(), inv, submittedTotal); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, inv.ID, "Invoice created successfully")
}

func (h *Handler) ListInvoices(c *gin.Context) {
	invoices, err := h.svc.ListInvoices(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	var req model.UpdateStatusRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Invoice status updated successfully")
}
