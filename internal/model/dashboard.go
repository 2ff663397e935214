package model

import "time"

type DashboardStats struct {
	TotalPatients          int       `json:"total_patients" db:"total_patients"`
	TotalDoctors           int       `json:"total_doctors" db:"total_doctors"`
	AppointmentsToday      int       `json:"appointments_today" db:"appointments_today"`
	PendingInvoices        int       `json:"pending_invoices" db:"pending_invoices"`
	LowStockMedicines      int       `json:"low_stock_medicines" db:"low_stock_medicines"`
	AvailableRooms         int       `json:"available_rooms" db:"available_rooms"`
	AmbulancesOnCall       int       `json:"ambulances_on_call" db:"ambulances_on_call"`
	MachineryInMaintenance int       `json:"machinery_in_maintenance" db:"machinery_in_maintenance"`
	GeneratedAt            time.Time `json:"generated_at" db:"-"`
}
