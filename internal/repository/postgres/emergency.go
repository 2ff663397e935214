package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/pkg/metrics"
)

type ambulanceRepository struct {
	BaseRepository
}

type emergencyContactRepository struct {
	BaseRepository
}

func NewAmbulanceRepository(db *sqlx.DB, m *metrics.Metrics) repository.AmbulanceRepository {
	return &ambulanceRepository{BaseRepository: NewBaseRepository(db, m)}
}

func NewEmergencyContactRepository(db *sqlx.DB, m *metrics.Metrics) repository.EmergencyContactRepository {
	return &emergencyContactRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *ambulanceRepository) Create(ctx context.Context, ambulance *model.Ambulance) (err error) {
	defer r.observe("ambulances.create", time.Now(), &err)

	query := `
		INSERT INTO ambulances (vehicle_number, driver_name, contact_number, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		ambulance.VehicleNumber,
		ambulance.DriverName,
		ambulance.ContactNumber,
		ambulance.Status,
	).Scan(&ambulance.ID, &ambulance.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create ambulance")
	}
	return nil
}

func (r *ambulanceRepository) List(ctx context.Context) (_ []*model.Ambulance, err error) {
	defer r.observe("ambulances.list", time.Now(), &err)

	ambulances := []*model.Ambulance{}
	query := `
		SELECT id, vehicle_number, driver_name, contact_number, status, created_at
		FROM ambulances ORDER BY created_at DESC, id DESC
	`
	if err = r.db.SelectContext(ctx, &ambulances, query); err != nil {
		return nil, fmt.Errorf("failed to list ambulances: %w", err)
	}
	return ambulances, nil
}

func (r *ambulanceRepository) Delete(ctx context.Context, id int64) (err error) {
	defer r.observe("ambulances.delete", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `DELETE FROM ambulances WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, "ambulance")
	}
	return requireAffected(res, "ambulance")
}

func (r *emergencyContactRepository) Create(ctx context.Context, contact *model.EmergencyContact) (err error) {
	defer r.observe("emergency_contacts.create", time.Now(), &err)

	query := `
		INSERT INTO emergency_contacts (name, role, contact_number, is_internal)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		contact.Name,
		contact.Role,
		contact.ContactNumber,
		contact.IsInternal,
	).Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create emergency contact")
	}
	return nil
}

func (r *emergencyContactRepository) List(ctx context.Context) (_ []*model.EmergencyContact, err error) {
	defer r.observe("emergency_contacts.list", time.Now(), &err)

	contacts := []*model.EmergencyContact{}
	query := `
		SELECT id, name, role, contact_number, is_internal, created_at
		FROM emergency_contacts ORDER BY created_at DESC, id DESC
	`
	if err = r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, fmt.Errorf("failed to list emergency contacts: %w", err)
	}
	return contacts, nil
}

func (r *emergencyContactRepository) Delete(ctx context.Context, id int64) (err error) {
	defer r.observe("emergency_contacts.delete", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, "emergency contact")
	}
	return requireAffected(res, "emergency contact")
}
