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

const machineryColumns = `id, name, type, model_number, serial_number, purchase_date,
	last_maintenance_date, next_maintenance_date, technician_details, description, status,
	created_at, updated_at`

const laundryColumns = `id, item_type, quantity, room_number, ward, status, last_washed_date,
	next_wash_due, assigned_to, notes, created_at, updated_at`

type machineryRepository struct {
	BaseRepository
}

type laundryRepository struct {
	BaseRepository
}

func NewMachineryRepository(db *sqlx.DB, m *metrics.Metrics) repository.MachineryRepository {
	return &machineryRepository{BaseRepository: NewBaseRepository(db, m)}
}

func NewLaundryRepository(db *sqlx.DB, m *metrics.Metrics) repository.LaundryRepository {
	return &laundryRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *machineryRepository) Create(ctx context.Context, machine *model.Machinery) (err error) {
	defer r.observe("machinery.create", time.Now(), &err)

	query := `
		INSERT INTO machinery (
			name, type, model_number, serial_number, purchase_date, last_maintenance_date,
			next_maintenance_date, technician_details, description, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		machine.Name,
		machine.Type,
		machine.ModelNumber,
		machine.SerialNumber,
		machine.PurchaseDate,
		machine.LastMaintenanceDate,
		machine.NextMaintenanceDate,
		machine.TechnicianDetails,
		machine.Description,
		machine.Status,
	).Scan(&machine.ID, &machine.CreatedAt, &machine.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "create machinery")
	}
	return nil
}

func (r *machineryRepository) Get(ctx context.Context, id int64) (_ *model.Machinery, err error) {
	defer r.observe("machinery.get", time.Now(), &err)

	var machine model.Machinery
	if err = r.db.GetContext(ctx, &machine, `SELECT `+machineryColumns+` FROM machinery WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err, "machinery")
	}
	return &machine, nil
}

func (r *machineryRepository) List(ctx context.Context) (_ []*model.Machinery, err error) {
	defer r.observe("machinery.list", time.Now(), &err)

	machines := []*model.Machinery{}
	query := `SELECT ` + machineryColumns + ` FROM machinery ORDER BY created_at DESC, id DESC`
	if err = r.db.SelectContext(ctx, &machines, query); err != nil {
		return nil, fmt.Errorf("failed to list machinery: %w", err)
	}
	return machines, nil
}

func (r *machineryRepository) Update(ctx context.Context, machine *model.Machinery) (err error) {
	defer r.observe("machinery.update", time.Now(), &err)

	query := `
		UPDATE machinery SET
			name = $1, type = $2, model_number = $3, serial_number = $4, purchase_date = $5,
			last_maintenance_date = $6, next_maintenance_date = $7, technician_details = $8,
			description = $9, status = $10, updated_at = NOW()
		WHERE id = $11
	`
	res, err := r.db.ExecContext(ctx, query,
		machine.Name,
		machine.Type,
		machine.ModelNumber,
		machine.SerialNumber,
		machine.PurchaseDate,
		machine.LastMaintenanceDate,
		machine.NextMaintenanceDate,
		machine.TechnicianDetails,
		machine.Description,
		machine.Status,
		machine.ID,
	)
	if err != nil {
		return mapWriteError(err, "update machinery")
	}
	return requireAffected(res, "machinery")
}

func (r *machineryRepository) Delete(ctx context.Context, id int64) (err error) {
	defer r.observe("machinery.delete", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `DELETE FROM machinery WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, "machinery")
	}
	return requireAffected(res, "machinery")
}

func (r *laundryRepository) Create(ctx context.Context, item *model.LaundryItem) (err error) {
	defer r.observe("laundry.create", time.Now(), &err)

	query := `
		INSERT INTO laundry (
			item_type, quantity, room_number, ward, status, last_washed_date,
			next_wash_due, assigned_to, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		item.ItemType,
		item.Quantity,
		item.RoomNumber,
		item.Ward,
		item.Status,
		item.LastWashedDate,
		item.NextWashDue,
		item.AssignedTo,
		item.Notes,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return mapWriteError(err, "create laundry item")
	}
	return nil
}

func (r *laundryRepository) Get(ctx context.Context, id int64) (_ *model.LaundryItem, err error) {
	defer r.observe("laundry.get", time.Now(), &err)

	var item model.LaundryItem
	if err = r.db.GetContext(ctx, &item, `SELECT `+laundryColumns+` FROM laundry WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err, "laundry item")
	}
	return &item, nil
}

func (r *laundryRepository) List(ctx context.Context) (_ []*model.LaundryItem, err error) {
	defer r.observe("laundry.list", time.Now(), &err)

	items := []*model.LaundryItem{}
	query := `SELECT ` + laundryColumns + ` FROM laundry ORDER BY created_at DESC, id DESC`
	if err = r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list laundry: %w", err)
	}
	return items, nil
}

func (r *laundryRepository) Update(ctx context.Context, item *model.LaundryItem) (err error) {
	defer r.observe("laundry.update", time.Now(), &err)

	query := `
		UPDATE laundry SET
			item_type = $1, quantity = $2, room_number = $3, ward = $4, status = $5,
			last_washed_date = $6, next_wash_due = $7, assigned_to = $8, notes = $9,
			updated_at = NOW()
		WHERE id = $10
	`
	res, err := r.db.ExecContext(ctx, query,
		item.ItemType,
		item.Quantity,
		item.RoomNumber,
		item.Ward,
		item.Status,
		item.LastWashedDate,
		item.NextWashDue,
		item.AssignedTo,
		item.Notes,
		item.ID,
	)
	if err != nil {
		return mapWriteError(err, "update laundry item")
	}
	return requireAffected(res, "laundry item")
}

func (r *laundryRepository) Delete(ctx context.Context, id int64) (err error) {
	defer r.observe("laundry.delete", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `DELETE FROM laundry WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, "laundry item")
	}
	return requireAffected(res, "laundry item")
}
