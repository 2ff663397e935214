package medicine

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/service/medicine"
)

type Handler struct {
	svc medicine.MedicineServicer
}

func NewHandler(svc medicine.MedicineServicer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, allow handler.RoleGuard) {
	write := allow(model.RoleAdmin, model.RolePharmacist)

	medicines := r.Group("/medicines")
	{
		medicines.GET("", h.ListMedicines)
		medicines.POST("", write, h.CreateMedicine)
		medicines.PUT("/:id", write, h.UpdateMedicine)
		medicines.DELETE("/:id", write, h.DeleteMedicine)
	}
}

func (h *Handler) CreateMedicine(c *gin.Context) {
	var req model.MedicineRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	m, priceSupplied := req.ToModel()
	if err := h.svc.CreateMedicine(c.Request.Context(), m, priceSupplied); err != nil {
		handler.RespondError(c, err)
		return
	}

	handler.RespondCreated(c, m.ID, "Medicine added successfully")
}

func (h *Handler) ListMedicines(c *gin.Context) {
	medicines, err := h.svc.ListMedicines(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, medicines)
}

func (h *Handler) UpdateMedicine(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	var req model.MedicineRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	m, priceSupplied := req.ToModel()
	m.ID = id
	if err := h.svc.UpdateMedicine(c.Request.Context(), m, priceSupplied); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Medicine updated successfully")
}

func (h *Handler) DeleteMedicine(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteMedicine(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondMessage(c, "Medicine deleted successfully")
}
