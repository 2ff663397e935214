package model

import "time"

const (
	DoctorStatusActive      = "Active"
	DoctorStatusOnLeave     = "On Leave"
	DoctorStatusUnavailable = "Unavailable"
)

var DoctorStatuses = []string{DoctorStatusActive, DoctorStatusOnLeave, DoctorStatusUnavailable}

// Doctor carries a confidential block (Aadhaar, PAN, bank details). IsVerified
// is display metadata; nothing is gated on it.
type Doctor struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Specialization  string    `json:"specialization" db:"specialization"`
	Department      *string   `json:"department" db:"department"`
	Phone           *string   `json:"phone" db:"phone"`
	Email           *string   `json:"email" db:"email"`
	Status          string    `json:"status" db:"status"`
	Address         *string   `json:"address" db:"address"`
	Qualification   *string   `json:"qualification" db:"qualification"`
	ExperienceYears int       `json:"experience_years" db:"experience_years"`
	JoiningDate     Date      `json:"joining_date" db:"joining_date"`
	ConsultationFee float64   `json:"consultation_fee" db:"consultation_fee"`
	AadhaarNumber   *string   `json:"aadhaar_number" db:"aadhaar_number"`
	PanNumber       *string   `json:"pan_number" db:"pan_number"`
	BankName        *string   `json:"bank_name" db:"bank_name"`
	BankAccountNo   *string   `json:"bank_account_no" db:"bank_account_no"`
	BankIFSC        *string   `json:"bank_ifsc" db:"bank_ifsc"`
	IsVerified      bool      `json:"is_verified" db:"is_verified"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

type CreateDoctorRequest struct {
	Name            string    `json:"name"`
	Specialization  string    `json:"specialization"`
	Department      string    `json:"department"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email" binding:"omitempty,email"`
	Status          string    `json:"status"`
	Address         string    `json:"address"`
	Qualification   string    `json:"qualification"`
	ExperienceYears FlexInt   `json:"experienceYears"`
	JoiningDate     Date      `json:"joiningDate"`
	ConsultationFee FlexFloat `json:"consultationFee"`
	AadhaarNumber   string    `json:"aadhaarNumber"`
	PanNumber       string    `json:"panNumber"`
	BankName        string    `json:"bankName"`
	BankAccountNo   string    `json:"bankAccountNo"`
	BankIFSC        string    `json:"bankIfsc"`
}

func (r *CreateDoctorRequest) ToModel() *Doctor {
	return &Doctor{
		Name:            r.Name,
		Specialization:  r.Specialization,
		Department:      StringPtr(r.Department),
		Phone:           StringPtr(r.Phone),
		Email:           StringPtr(r.Email),
		Status:          r.Status,
		Address:         StringPtr(r.Address),
		Qualification:   StringPtr(r.Qualification),
		ExperienceYears: int(r.ExperienceYears),
		JoiningDate:     r.JoiningDate,
		ConsultationFee: float64(r.ConsultationFee),
		AadhaarNumber:   StringPtr(r.AadhaarNumber),
		PanNumber:       StringPtr(r.PanNumber),
		BankName:        StringPtr(r.BankName),
		BankAccountNo:   StringPtr(r.BankAccountNo),
		BankIFSC:        StringPtr(r.BankIFSC),
	}
}
