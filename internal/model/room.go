package model

import "time"

const (
	RoomTypeGeneral = "General"
	RoomTypePrivate = "Private"
	RoomTypeICU     = "ICU"
	RoomTypeWard    = "Ward"

	RoomStatusAvailable   = "Available"
	RoomStatusOccupied    = "Occupied"
	RoomStatusMaintenance = "Maintenance"
)

var (
	RoomTypes    = []string{RoomTypeGeneral, RoomTypePrivate, RoomTypeICU, RoomTypeWard}
	RoomStatuses = []string{RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance}
)

type Room struct {
	ID          int64     `json:"id" db:"id"`
	RoomNumber  string    `json:"room_number" db:"room_number"`
	Type        string    `json:"type" db:"type"`
	PricePerDay float64   `json:"price_per_day" db:"price_per_day"`
	Status      string    `json:"status" db:"status"`
	PatientID   *int64    `json:"patient_id" db:"patient_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type RoomView struct {
	Room
	PatientName *string `json:"patient_name" db:"patient_name"`
}

type RoomRequest struct {
	RoomNumber  string    `json:"roomNumber"`
	Type        string    `json:"type"`
	PricePerDay FlexFloat `json:"pricePerDay"`
	Status      string    `json:"status"`
	PatientID   *FlexInt  `json:"patientId"`
}

func (r *RoomRequest) ToModel() *Room {
	return &Room{
		RoomNumber:  r.RoomNumber,
		Type:        r.Type,
		PricePerDay: float64(r.PricePerDay),
		Status:      r.Status,
		PatientID:   r.PatientID.Ptr(),
	}
}
