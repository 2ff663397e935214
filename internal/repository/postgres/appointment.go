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

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB, m *metrics.Metrics) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) (err error) {
	defer r.observe("appointments.create", time.Now(), &err)

	query := `
		INSERT INTO appointments (patient_id, doctor_id, appointment_date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.AppointmentDate,
		appointment.Reason,
		appointment.Status,
	).Scan(&appointment.ID, &appointment.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create appointment")
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (_ *model.Appointment, err error) {
	defer r.observe("appointments.get", time.Now(), &err)

	var appointment model.Appointment
	query := `
		SELECT id, patient_id, doctor_id, appointment_date, reason, status, created_at
		FROM appointments WHERE id = $1
	`
	if err = r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, mapGetError(err, "appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context) (_ []*model.AppointmentView, err error) {
	defer r.observe("appointments.list", time.Now(), &err)

	query := `
		SELECT a.id, a.patient_id, a.doctor_id, a.appointment_date, a.reason, a.status, a.created_at,
			p.first_name || ' ' || p.last_name AS patient_name,
			p.phone AS patient_phone,
			d.name AS doctor_name,
			d.specialization AS doctor_specialization,
			d.department AS doctor_department
		FROM appointments a
		LEFT JOIN patients p ON a.patient_id = p.id
		LEFT JOIN doctors d ON a.doctor_id = d.id
		ORDER BY a.appointment_date ASC, a.id ASC
	`
	appointments := []*model.AppointmentView{}
	if err = r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status string) (err error) {
	defer r.observe("appointments.update_status", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `UPDATE appointments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return mapWriteError(err, "update appointment")
	}
	return requireAffected(res, "appointment")
}
