package model

import "time"

const (
	MachineryStatusOperational      = "Operational"
	MachineryStatusUnderMaintenance = "Under Maintenance"
	MachineryStatusBroken           = "Broken"
	MachineryStatusRetired          = "Retired"
)

var MachineryStatuses = []string{
	MachineryStatusOperational,
	MachineryStatusUnderMaintenance,
	MachineryStatusBroken,
	MachineryStatusRetired,
}

type Machinery struct {
	ID                  int64     `json:"id" db:"id"`
	Name                string    `json:"name" db:"name"`
	Type                string    `json:"type" db:"type"`
	ModelNumber         *string   `json:"model_number" db:"model_number"`
	SerialNumber        *string   `json:"serial_number" db:"serial_number"`
	PurchaseDate        Date      `json:"purchase_date" db:"purchase_date"`
	LastMaintenanceDate Date      `json:"last_maintenance_date" db:"last_maintenance_date"`
	NextMaintenanceDate Date      `json:"next_maintenance_date" db:"next_maintenance_date"`
	TechnicianDetails   *string   `json:"technician_details" db:"technician_details"`
	Description         *string   `json:"description" db:"description"`
	Status              string    `json:"status" db:"status"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

type MachineryRequest struct {
	Name                string `json:"name"`
	Type                string `json:"type"`
	ModelNumber         string `json:"modelNumber"`
	SerialNumber        string `json:"serialNumber"`
	PurchaseDate        Date   `json:"purchaseDate"`
	LastMaintenanceDate Date   `json:"lastMaintenanceDate"`
	NextMaintenanceDate Date   `json:"nextMaintenanceDate"`
	TechnicianDetails   string `json:"technicianDetails"`
	Description         string `json:"description"`
	Status              string `json:"status"`
}

func (r *MachineryRequest) ToModel() *Machinery {
	return &Machinery{
		Name:                r.Name,
		Type:                r.Type,
		ModelNumber:         StringPtr(r.ModelNumber),
		SerialNumber:        StringPtr(r.SerialNumber),
		PurchaseDate:        r.PurchaseDate,
		LastMaintenanceDate: r.LastMaintenanceDate,
		NextMaintenanceDate: r.NextMaintenanceDate,
		TechnicianDetails:   StringPtr(r.TechnicianDetails),
		Description:         StringPtr(r.Description),
		Status:              r.Status,
	}
}

const (
	LaundryStatusClean     = "Clean"
	LaundryStatusDirty     = "Dirty"
	LaundryStatusInLaundry = "In Laundry"
	LaundryStatusLost      = "Lost/Damaged"
)

var LaundryStatuses = []string{LaundryStatusClean, LaundryStatusDirty, LaundryStatusInLaundry, LaundryStatusLost}

type LaundryItem struct {
	ID             int64     `json:"id" db:"id"`
	ItemType       string    `json:"item_type" db:"item_type"`
	Quantity       int       `json:"quantity" db:"quantity"`
	RoomNumber     *string   `json:"room_number" db:"room_number"`
	Ward           *string   `json:"ward" db:"ward"`
	Status         string    `json:"status" db:"status"`
	LastWashedDate Date      `json:"last_washed_date" db:"last_washed_date"`
	NextWashDue    Date      `json:"next_wash_due" db:"next_wash_due"`
	AssignedTo     *string   `json:"assigned_to" db:"assigned_to"`
	Notes          *string   `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type LaundryRequest struct {
	ItemType       string  `json:"itemType"`
	Quantity       FlexInt `json:"quantity"`
	RoomNumber     string  `json:"roomNumber"`
	Ward           string  `json:"ward"`
	Status         string  `json:"status"`
	LastWashedDate Date    `json:"lastWashedDate"`
	NextWashDue    Date    `json:"nextWashDue"`
	AssignedTo     string  `json:"assignedTo"`
	Notes          string  `json:"notes"`
}

func (r *LaundryRequest) ToModel() *LaundryItem {
	return &LaundryItem{
		ItemType:       r.ItemType,
		Quantity:       int(r.Quantity),
		RoomNumber:     StringPtr(r.RoomNumber),
		Ward:           StringPtr(r.Ward),
		Status:         r.Status,
		LastWashedDate: r.LastWashedDate,
		NextWashDue:    r.NextWashDue,
		AssignedTo:     StringPtr(r.AssignedTo),
		Notes:          StringPtr(r.Notes),
	}
}
