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

type invoiceRepository struct {
	BaseRepository
}

func NewInvoiceRepository(db *sqlx.DB, m *metrics.Metrics) repository.InvoiceRepository {
	return &invoiceRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) (err error) {
	defer r.observe("invoices.create", time.Now(), &err)

	query := `
		INSERT INTO invoices (patient_id, amount, tax, total, status, payment_method, invoice_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		invoice.PatientID,
		invoice.Amount,
		invoice.Tax,
		invoice.Total,
		invoice.Status,
		invoice.PaymentMethod,
		invoice.InvoiceDate,
	).Scan(&invoice.ID, &invoice.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create invoice")
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id int64) (_ *model.Invoice, err error) {
	defer r.observe("invoices.get", time.Now(), &err)

	var invoice model.Invoice
	query := `
		SELECT id, patient_id, amount, tax, total, status, payment_method, invoice_date, created_at
		FROM invoices WHERE id = $1
	`
	if err = r.db.GetContext(ctx, &invoice, query, id); err != nil {
		return nil, mapGetError(err, "invoice")
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context) (_ []*model.InvoiceView, err error) {
	defer r.observe("invoices.list", time.Now(), &err)

	query := `
		SELECT i.id, i.patient_id, i.amount, i.tax, i.total, i.status, i.payment_method,
			i.invoice_date, i.created_at,
			p.first_name || ' ' || p.last_name AS patient_name
		FROM invoices i
		LEFT JOIN patients p ON i.patient_id = p.id
		ORDER BY i.created_at DESC, i.id DESC
	`
	invoices := []*model.InvoiceView{}
	if err = r.db.SelectContext(ctx, &invoices, query); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id int64, status string) (err error) {
	defer r.observe("invoices.update_status", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `UPDATE invoices SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return mapWriteError(err, "update invoice")
	}
	return requireAffected(res, "invoice")
}
