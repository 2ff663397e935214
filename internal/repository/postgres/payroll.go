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

type payrollRepository struct {
	BaseRepository
}

func NewPayrollRepository(db *sqlx.DB, m *metrics.Metrics) repository.PayrollRepository {
	return &payrollRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *payrollRepository) Create(ctx context.Context, entry *model.PayrollEntry) (err error) {
	defer r.observe("payroll.create", time.Now(), &err)

	query := `
		INSERT INTO payroll (
			recipient_id, recipient_type, recipient_name, amount, payment_date,
			payment_method, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		entry.RecipientID,
		entry.RecipientType,
		entry.RecipientName,
		entry.Amount,
		entry.PaymentDate,
		entry.PaymentMethod,
		entry.Status,
		entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create payroll entry")
	}
	return nil
}

func (r *payrollRepository) List(ctx context.Context) (_ []*model.PayrollEntry, err error) {
	defer r.observe("payroll.list", time.Now(), &err)

	entries := []*model.PayrollEntry{}
	query := `
		SELECT id, recipient_id, recipient_type, recipient_name, amount, payment_date,
			payment_method, status, notes, created_at
		FROM payroll ORDER BY payment_date DESC, id DESC
	`
	if err = r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list payroll: %w", err)
	}
	return entries, nil
}
