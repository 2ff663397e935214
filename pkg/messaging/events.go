package messaging

// Domain event types published on the events channel.
const (
	EventPatientRegistered = "patient.registered"
	EventPatientDeleted    = "patient.deleted"

	EventDoctorCreated = "doctor.created"
	EventDoctorDeleted = "doctor.deleted"

	EventAppointmentBooked        = "appointment.booked"
	EventAppointmentStatusChanged = "appointment.status_changed"

	EventInvoiceIssued        = "invoice.issued"
	EventInvoiceStatusChanged = "invoice.status_changed"

	EventMedicineCreated = "medicine.created"
	EventMedicineUpdated = "medicine.updated"
	EventMedicineDeleted = "medicine.deleted"

	EventRoomCreated = "room.created"
	EventRoomUpdated = "room.updated"
	EventRoomDeleted = "room.deleted"

	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"

	EventAmbulanceCreated        = "ambulance.created"
	EventAmbulanceDeleted        = "ambulance.deleted"
	EventEmergencyContactCreated = "emergency_contact.created"
	EventEmergencyContactDeleted = "emergency_contact.deleted"

	EventPayrollRecorded = "payroll.recorded"

	EventMachineryCreated = "machinery.created"
	EventMachineryUpdated = "machinery.updated"
	EventMachineryDeleted = "machinery.deleted"

	EventLaundryCreated = "laundry.created"
	EventLaundryUpdated = "laundry.updated"
	EventLaundryDeleted = "laundry.deleted"
)

// EntityRef is the payload for events that only identify a row.
type EntityRef struct {
	ID int64 `json:"id"`
}

// StatusChange is the payload for status transition events.
type StatusChange struct {
	ID   int64  `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}
