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

const patientColumns = `id, first_name, last_name, dob, gender, phone, email, address, blood_group,
	allergies, medical_history, emergency_contact_name, emergency_contact_phone, created_at`

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB, m *metrics.Metrics) repository.PatientRepository {
	return &patientRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) (err error) {
	defer r.observe("patients.create", time.Now(), &err)

	query := `
		INSERT INTO patients (
			first_name, last_name, dob, gender, phone, email, address, blood_group,
			allergies, medical_history, emergency_contact_name, emergency_contact_phone
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.DOB,
		patient.Gender,
		patient.Phone,
		patient.Email,
		patient.Address,
		patient.BloodGroup,
		patient.Allergies,
		patient.MedicalHistory,
		patient.EmergencyContactName,
		patient.EmergencyContactPhone,
	).Scan(&patient.ID, &patient.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create patient")
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (_ *model.Patient, err error) {
	defer r.observe("patients.get", time.Now(), &err)

	var patient model.Patient
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`
	if err = r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, mapGetError(err, "patient")
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) (_ []*model.Patient, err error) {
	defer r.observe("patients.list", time.Now(), &err)

	patients := []*model.Patient{}
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY created_at DESC, id DESC`
	if err = r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) (err error) {
	defer r.observe("patients.delete", time.Now(), &err)

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		release := `UPDATE rooms SET status = $1, patient_id = NULL WHERE patient_id = $2`
		if _, err := tx.ExecContext(ctx, release, model.RoomStatusAvailable, id); err != nil {
			return fmt.Errorf("failed to release rooms: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
		if err != nil {
			return mapDeleteError(err, "patient")
		}
		return requireAffected(res, "patient")
	})
}
