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

type dashboardRepository struct {
	BaseRepository
}

func NewDashboardRepository(db *sqlx.DB, m *metrics.Metrics) repository.DashboardRepository {
	return &dashboardRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *dashboardRepository) Stats(ctx context.Context, day time.Time) (_ *model.DashboardStats, err error) {
	defer r.observe("dashboard.stats", time.Now(), &err)

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	query := `
		SELECT
			(SELECT COUNT(*) FROM patients) AS total_patients,
			(SELECT COUNT(*) FROM doctors) AS total_doctors,
			(SELECT COUNT(*) FROM appointments
				WHERE appointment_date >= $1 AND appointment_date < $2) AS appointments_today,
			(SELECT COUNT(*) FROM invoices WHERE status = $3) AS pending_invoices,
			(SELECT COUNT(*) FROM medicines WHERE stock < $4) AS low_stock_medicines,
			(SELECT COUNT(*) FROM rooms WHERE status = $5) AS available_rooms,
			(SELECT COUNT(*) FROM ambulances WHERE status = $6) AS ambulances_on_call,
			(SELECT COUNT(*) FROM machinery WHERE status = $7) AS machinery_in_maintenance
	`
	var stats model.DashboardStats
	err = r.db.GetContext(ctx, &stats, query,
		start,
		end,
		model.InvoiceStatusPending,
		model.LowStockThreshold,
		model.RoomStatusAvailable,
		model.AmbulanceStatusOnCall,
		model.MachineryStatusUnderMaintenance,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	return &stats, nil
}
