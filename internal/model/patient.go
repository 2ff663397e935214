package model

import "time"

// Gender values accepted for patients.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

var Genders = []string{GenderMale, GenderFemale, GenderOther}

type Patient struct {
	ID                    int64     `json:"id" db:"id"`
	FirstName             string    `json:"first_name" db:"first_name"`
	LastName              string    `json:"last_name" db:"last_name"`
	DOB                   Date      `json:"dob" db:"dob"`
	Gender                string    `json:"gender" db:"gender"`
	Phone                 string    `json:"phone" db:"phone"`
	Email                 *string   `json:"email" db:"email"`
	Address               *string   `json:"address" db:"address"`
	BloodGroup            *string   `json:"blood_group" db:"blood_group"`
	Allergies             *string   `json:"allergies" db:"allergies"`
	MedicalHistory        *string   `json:"medical_history" db:"medical_history"`
	EmergencyContactName  *string   `json:"emergency_contact_name" db:"emergency_contact_name"`
	EmergencyContactPhone *string   `json:"emergency_contact_phone" db:"emergency_contact_phone"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

type CreatePatientRequest struct {
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	DateOfBirth           Date   `json:"dateOfBirth"`
	Gender                string `json:"gender"`
	Phone                 string `json:"phone"`
	Email                 string `json:"email" binding:"omitempty,email"`
	Address               string `json:"address"`
	BloodGroup            string `json:"bloodGroup"`
	Allergies             string `json:"allergies"`
	MedicalHistory        string `json:"medicalHistory"`
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
}

func (r *CreatePatientRequest) ToModel() *Patient {
	return &Patient{
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		DOB:                   r.DateOfBirth,
		Gender:                r.Gender,
		Phone:                 r.Phone,
		Email:                 StringPtr(r.Email),
		Address:               StringPtr(r.Address),
		BloodGroup:            StringPtr(r.BloodGroup),
		Allergies:             StringPtr(r.Allergies),
		MedicalHistory:        StringPtr(r.MedicalHistory),
		EmergencyContactName:  StringPtr(r.EmergencyContactName),
		EmergencyContactPhone: StringPtr(r.EmergencyContactPhone),
	}
}
