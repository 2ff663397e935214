package model

import "time"

const (
	AmbulanceStatusAvailable   = "Available"
	AmbulanceStatusOnCall      = "On Call"
	AmbulanceStatusMaintenance = "Maintenance"
)

var AmbulanceStatuses = []string{AmbulanceStatusAvailable, AmbulanceStatusOnCall, AmbulanceStatusMaintenance}

type Ambulance struct {
	ID            int64     `json:"id" db:"id"`
	VehicleNumber string    `json:"vehicle_number" db:"vehicle_number"`
	DriverName    string    `json:"driver_name" db:"driver_name"`
	ContactNumber string    `json:"contact_number" db:"contact_number"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type CreateAmbulanceRequest struct {
	VehicleNumber string `json:"vehicleNumber"`
	DriverName    string `json:"driverName"`
	ContactNumber string `json:"contactNumber"`
	Status        string `json:"status"`
}

func (r *CreateAmbulanceRequest) ToModel() *Ambulance {
	return &Ambulance{
		VehicleNumber: r.VehicleNumber,
		DriverName:    r.DriverName,
		ContactNumber: r.ContactNumber,
		Status:        r.Status,
	}
}

type EmergencyContact struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Role          *string   `json:"role" db:"role"`
	ContactNumber string    `json:"contact_number" db:"contact_number"`
	IsInternal    bool      `json:"is_internal" db:"is_internal"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type CreateEmergencyContactRequest struct {
	Name          string `json:"name"`
	Role          string `json:"role"`
	ContactNumber string `json:"contactNumber"`
	IsInternal    *bool  `json:"isInternal"`
}

func (r *CreateEmergencyContactRequest) ToModel() *EmergencyContact {
	internal := true
	if r.IsInternal != nil {
		internal = *r.IsInternal
	}
	return &EmergencyContact{
		Name:          r.Name,
		Role:          StringPtr(r.Role),
		ContactNumber: r.ContactNumber,
		IsInternal:    internal,
	}
}
