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

type searchRepository struct {
	BaseRepository
}

func NewSearchRepository(db *sqlx.DB, m *metrics.Metrics) repository.SearchRepository {
	return &searchRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *searchRepository) SearchPatients(ctx context.Context, pattern string, limit int) (_ []model.PatientHit, err error) {
	defer r.observe("search.patients", time.Now(), &err)

	query := `
		SELECT id, first_name, last_name, phone FROM patients
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR phone ILIKE $1
		ORDER BY id
		LIMIT $2
	`
	hits := []model.PatientHit{}
	if err = r.db.SelectContext(ctx, &hits, query, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return hits, nil
}

func (r *searchRepository) SearchDoctors(ctx context.Context, pattern string, limit int) (_ []model.DoctorHit, err error) {
	defer r.observe("search.doctors", time.Now(), &err)

	query := `
		SELECT id, name, specialization FROM doctors
		WHERE name ILIKE $1 OR specialization ILIKE $1
		ORDER BY id
		LIMIT $2
	`
	hits := []model.DoctorHit{}
	if err = r.db.SelectContext(ctx, &hits, query, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	return hits, nil
}

func (r *searchRepository) SearchMedicines(ctx context.Context, pattern string, limit int) (_ []model.MedicineHit, err error) {
	defer r.observe("search.medicines", time.Now(), &err)

	query := `
		SELECT id, name, category, stock FROM medicines
		WHERE name ILIKE $1 OR category ILIKE $1
		ORDER BY id
		LIMIT $2
	`
	hits := []model.MedicineHit{}
	if err = r.db.SelectContext(ctx, &hits, query, pattern, limit); err != nil {
		return nil, fmt.Errorf("failed to search medicines: %w", err)
	}
	return hits, nil
}
