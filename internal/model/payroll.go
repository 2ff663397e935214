package model

import "time"

const (
	PayrollStatusPaid    = "Paid"
	PayrollStatusPending = "Pending"
	PayrollStatusFailed  = "Failed"
)

var PayrollStatuses = []string{PayrollStatusPaid, PayrollStatusPending, PayrollStatusFailed}

// Recipient types. Only Doctor, Staff and Nurse entries reference a row by id;
// the rest are identified by name alone.
const (
	RecipientDoctor  = "Doctor"
	RecipientStaff   = "Staff"
	RecipientNurse   = "Nurse"
	RecipientOther   = "Other"
	RecipientSweeper = "Sweeper"
	RecipientWardBoy = "Ward Boy"
)

var RecipientTypes = []string{RecipientDoctor, RecipientStaff, RecipientNurse, RecipientOther, RecipientSweeper, RecipientWardBoy}

func RecipientTakesID(recipientType string) bool {
	switch recipientType {
	case RecipientDoctor, RecipientStaff, RecipientNurse:
		return true
	}
	return false
}

type PayrollEntry struct {
	ID            int64     `json:"id" db:"id"`
	RecipientID   *int64    `json:"recipient_id" db:"recipient_id"`
	RecipientType string    `json:"recipient_type" db:"recipient_type"`
	RecipientName string    `json:"recipient_name" db:"recipient_name"`
	Amount        float64   `json:"amount" db:"amount"`
	PaymentDate   Date      `json:"payment_date" db:"payment_date"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	Status        string    `json:"status" db:"status"`
	Notes         *string   `json:"notes" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type CreatePayrollRequest struct {
	RecipientID   *FlexInt  `json:"recipientId"`
	RecipientType string    `json:"recipientType"`
	RecipientName string    `json:"recipientName"`
	Amount        FlexFloat `json:"amount"`
	PaymentDate   Date      `json:"paymentDate"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
}

func (r *CreatePayrollRequest) ToModel() *PayrollEntry {
	return &PayrollEntry{
		RecipientID:   r.RecipientID.Ptr(),
		RecipientType: r.RecipientType,
		RecipientName: r.RecipientName,
		Amount:        float64(r.Amount),
		PaymentDate:   r.PaymentDate,
		PaymentMethod: r.Method,
		Status:        r.Status,
		Notes:         StringPtr(r.Notes),
	}
}
