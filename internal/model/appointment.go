package model

import "time"

const (
	AppointmentStatusScheduled = "Scheduled"
	AppointmentStatusCompleted = "Completed"
	AppointmentStatusCancelled = "Cancelled"
)

var AppointmentStatuses = []string{AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled}

type Appointment struct {
	ID              int64     `json:"id" db:"id"`
	PatientID       int64     `json:"patient_id" db:"patient_id"`
	DoctorID        int64     `json:"doctor_id" db:"doctor_id"`
	AppointmentDate DateTime  `json:"appointment_date" db:"appointment_date"`
	Reason          *string   `json:"reason" db:"reason"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// AppointmentView is an appointment joined with its patient and doctor.
type AppointmentView struct {
	Appointment
	PatientName          *string `json:"patient_name" db:"patient_name"`
	PatientPhone         *string `json:"patient_phone" db:"patient_phone"`
	DoctorName           *string `json:"doctor_name" db:"doctor_name"`
	DoctorSpecialization *string `json:"doctor_specialization" db:"doctor_specialization"`
	DoctorDepartment     *string `json:"doctor_department" db:"doctor_department"`
}

type CreateAppointmentRequest struct {
	PatientID       FlexInt  `json:"patientId"`
	DoctorID        FlexInt  `json:"doctorId"`
	AppointmentDate DateTime `json:"appointmentDate"`
	Reason          string   `json:"reason"`
	Status          string   `json:"status"`
}

func (r *CreateAppointmentRequest) ToModel() *Appointment {
	return &Appointment{
		PatientID:       int64(r.PatientID),
		DoctorID:        int64(r.DoctorID),
		AppointmentDate: r.AppointmentDate,
		Reason:          StringPtr(r.Reason),
		Status:          r.Status,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
