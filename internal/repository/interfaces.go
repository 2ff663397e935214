package repository

import (
	"context"
	"time"

	"github.com/jwalitptl/medidesk-api/internal/model"
)

// All repository interfaces in one file
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
		// Delete releases any room the patient occupies in the same transaction.
		Delete(ctx context.Context, id int64) error
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		Delete(ctx context.Context, id int64) error
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		List(ctx context.Context) ([]*model.AppointmentView, error)
		UpdateStatus(ctx context.Context, id int64, status string) error
	}

	InvoiceRepository interface {
		Create(ctx context.Context, invoice *model.Invoice) error
		Get(ctx context.Context, id int64) (*model.Invoice, error)
		List(ctx context.Context) ([]*model.InvoiceView, error)
		UpdateStatus(ctx context.Context, id int64, status string) error
	}

	MedicineRepository interface {
		Create(ctx context.Context, medicine *model.Medicine) error
		Get(ctx context.Context, id int64) (*model.Medicine, error)
		List(ctx context.Context) ([]*model.Medicine, error)
		Update(ctx context.Context, medicine *model.Medicine) error
		Delete(ctx context.Context, id int64) error
	}

	RoomRepository interface {
		Create(ctx context.Context, room *model.Room) error
		Get(ctx context.Context, id int64) (*model.Room, error)
		List(ctx context.Context) ([]*model.RoomView, error)
		Update(ctx context.Context, room *model.Room) error
		Delete(ctx context.Context, id int64) error
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByID(ctx context.Context, id int64) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		List(ctx context.Context) ([]*model.UserSummary, error)
		Update(ctx context.Context, update *model.UserUpdate) error
		Delete(ctx context.Context, id int64) error
		// ListPasswordHashes returns every stored password keyed by user id.
		ListPasswordHashes(ctx context.Context) (map[int64]string, error)
		SetPasswordHash(ctx context.Context, id int64, hash string) error
	}

	AmbulanceRepository interface {
		Create(ctx context.Context, ambulance *model.Ambulance) error
		List(ctx context.Context) ([]*model.Ambulance, error)
		Delete(ctx context.Context, id int64) error
	}

	EmergencyContactRepository interface {
		Create(ctx context.Context, contact *model.EmergencyContact) error
		List(ctx context.Context) ([]*model.EmergencyContact, error)
		Delete(ctx context.Context, id int64) error
	}

	PayrollRepository interface {
		Create(ctx context.Context, entry *model.PayrollEntry) error
		List(ctx context.Context) ([]*model.PayrollEntry, error)
	}

	MachineryRepository interface {
		Create(ctx context.Context, machine *model.Machinery) error
		Get(ctx context.Context, id int64) (*model.Machinery, error)
		List(ctx context.Context) ([]*model.Machinery, error)
		Update(ctx context.Context, machine *model.Machinery) error
		Delete(ctx context.Context, id int64) error
	}

	LaundryRepository interface {
		Create(ctx context.Context, item *model.LaundryItem) error
		Get(ctx context.Context, id int64) (*model.LaundryItem, error)
		List(ctx context.Context) ([]*model.LaundryItem, error)
		Update(ctx context.Context, item *model.LaundryItem) error
		Delete(ctx context.Context, id int64) error
	}

	// SearchRepository takes an already escaped ILIKE pattern.
	SearchRepository interface {
		SearchPatients(ctx context.Context, pattern string, limit int) ([]model.PatientHit, error)
		SearchDoctors(ctx context.Context, pattern string, limit int) ([]model.DoctorHit, error)
		SearchMedicines(ctx context.Context, pattern string, limit int) ([]model.MedicineHit, error)
	}

	AdminRepository interface {
		ListTables(ctx context.Context) ([]string, error)
		// SelectRows must only be called with a name returned by ListTables.
		SelectRows(ctx context.Context, table string, limit int) ([]map[string]interface{}, error)
	}

	DashboardRepository interface {
		Stats(ctx context.Context, day time.Time) (*model.DashboardStats, error)
	}
)
