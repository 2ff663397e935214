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

type medicineRepository struct {
	BaseRepository
}

func NewMedicineRepository(db *sqlx.DB, m *metrics.Metrics) repository.MedicineRepository {
	return &medicineRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *medicineRepository) Create(ctx context.Context, medicine *model.Medicine) (err error) {
	defer r.observe("medicines.create", time.Now(), &err)

	query := `
		INSERT INTO medicines (name, category, stock, price, expiry_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		medicine.Name,
		medicine.Category,
		medicine.Stock,
		medicine.Price,
		medicine.ExpiryDate,
	).Scan(&medicine.ID, &medicine.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create medicine")
	}
	return nil
}

func (r *medicineRepository) Get(ctx context.Context, id int64) (_ *model.Medicine, err error) {
	defer r.observe("medicines.get", time.Now(), &err)

	var medicine model.Medicine
	query := `SELECT id, name, category, stock, price, expiry_date, created_at FROM medicines WHERE id = $1`
	if err = r.db.GetContext(ctx, &medicine, query, id); err != nil {
		return nil, mapGetError(err, "medicine")
	}
	return &medicine, nil
}

func (r *medicineRepository) List(ctx context.Context) (_ []*model.Medicine, err error) {
	defer r.observe("medicines.list", time.Now(), &err)

	medicines := []*model.Medicine{}
	query := `SELECT id, name, category, stock, price, expiry_date, created_at FROM medicines ORDER BY name ASC, id ASC`
	if err = r.db.SelectContext(ctx, &medicines, query); err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	return medicines, nil
}

func (r *medicineRepository) Update(ctx context.Context, medicine *model.Medicine) (err error) {
	defer r.observe("medicines.update", time.Now(), &err)

	query := `
		UPDATE medicines SET name = $1, category = $2, stock = $3, price = $4, expiry_date = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		medicine.Name,
		medicine.Category,
		medicine.Stock,
		medicine.Price,
		medicine.ExpiryDate,
		medicine.ID,
	)
	if err != nil {
		return mapWriteError(err, "update medicine")
	}
	return requireAffected(res, "medicine")
}

func (r *medicineRepository) Delete(ctx context.Context, id int64) (err error) {
	defer r.observe("medicines.delete", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, "medicine")
	}
	return requireAffected(res, "medicine")
}
