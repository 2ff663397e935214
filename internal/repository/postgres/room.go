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

type roomRepository struct {
	BaseRepository
}

func NewRoomRepository(db *sqlx.DB, m *metrics.Metrics) repository.RoomRepository {
	return &roomRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *roomRepository) Create(ctx context.Context, room *model.Room) (err error) {
	defer r.observe("rooms.create", time.Now(), &err)

	query := `
		INSERT INTO rooms (room_number, type, price_per_day, status, patient_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		room.RoomNumber,
		room.Type,
		room.PricePerDay,
		room.Status,
		room.PatientID,
	).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create room")
	}
	return nil
}

func (r *roomRepository) Get(ctx context.Context, id int64) (_ *model.Room, err error) {
	defer r.observe("rooms.get", time.Now(), &err)

	var room model.Room
	query := `SELECT id, room_number, type, price_per_day, status, patient_id, created_at FROM rooms WHERE id = $1`
	if err = r.db.GetContext(ctx, &room, query, id); err != nil {
		return nil, mapGetError(err, "room")
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) (_ []*model.RoomView, err error) {
	defer r.observe("rooms.list", time.Now(), &err)

	query := `
		SELECT r.id, r.room_number, r.type, r.price_per_day, r.status, r.patient_id, r.created_at,
			p.first_name || ' ' || p.last_name AS patient_name
		FROM rooms r
		LEFT JOIN patients p ON r.patient_id = p.id
		ORDER BY r.room_number ASC
	`
	rooms := []*model.RoomView{}
	if err = r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (r *roomRepository) Update(ctx context.Context, room *model.Room) (err error) {
	defer r.observe("rooms.update", time.Now(), &err)

	query := `
		UPDATE rooms SET room_number = $1, type = $2, price_per_day = $3, status = $4, patient_id = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		room.RoomNumber,
		room.Type,
		room.PricePerDay,
		room.Status,
		room.PatientID,
		room.ID,
	)
	if err != nil {
		return mapWriteError(err, "update room")
	}
	return requireAffected(res, "room")
}

func (r *roomRepository) Delete(ctx context.Context, id int64) (err error) {
	defer r.observe("rooms.delete", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, "room")
	}
	return requireAffected(res, "room")
}
