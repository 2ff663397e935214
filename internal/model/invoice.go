package model

import "time"

const (
	InvoiceStatusPaid    = "Paid"
	InvoiceStatusPending = "Pending"
	InvoiceStatusOverdue = "Overdue"
)

var InvoiceStatuses = []string{InvoiceStatusPaid, InvoiceStatusPending, InvoiceStatusOverdue}

const DefaultPaymentMethod = "Cash"

type Invoice struct {
	ID            int64     `json:"id" db:"id"`
	PatientID     int64     `json:"patient_id" db:"patient_id"`
	Amount        float64   `json:"amount" db:"amount"`
	Tax           float64   `json:"tax" db:"tax"`
	Total         float64   `json:"total" db:"total"`
	Status        string    `json:"status" db:"status"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	InvoiceDate   Date      `json:"invoice_date" db:"invoice_date"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type InvoiceView struct {
	Invoice
	PatientName *string `json:"patient_name" db:"patient_name"`
}

// CreateInvoiceRequest keeps Total optional; when present it must agree with amount + tax.
type CreateInvoiceRequest struct {
	PatientID   FlexInt    `json:"patientId"`
	Amount      FlexFloat  `json:"amount"`
	Tax         FlexFloat  `json:"tax"`
	Total       *FlexFloat `json:"total"`
	Status      string     `json:"status"`
	Method      string     `json:"method"`
	InvoiceDate Date       `json:"invoiceDate"`
}

func (r *CreateInvoiceRequest) ToModel() (*Invoice, *float64) {
	inv := &Invoice{
		PatientID:     int64(r.PatientID),
		Amount:        float64(r.Amount),
		Tax:           float64(r.Tax),
		Status:        r.Status,
		PaymentMethod: r.Method,
		InvoiceDate:   r.InvoiceDate,
	}
	if r.Total == nil {
		return inv, nil
	}
	total := float64(*r.Total)
	return inv, &total
}
