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

const doctorColumns = `id, name, specialization, department, phone, email, status, address,
	qualification, experience_years, joining_date, consultation_fee, aadhaar_number, pan_number,
	bank_name, bank_account_no, bank_ifsc, is_verified, created_at`

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB, m *metrics.Metrics) repository.DoctorRepository {
	return &doctorRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) (err error) {
	defer r.observe("doctors.create", time.Now(), &err)

	query := `
		INSERT INTO doctors (
			name, specialization, department, phone, email, status, address, qualification,
			experience_years, joining_date, consultation_fee, aadhaar_number, pan_number,
			bank_name, bank_account_no, bank_ifsc, is_verified
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at
	`
	err = r.db.QueryRowxContext(ctx, query,
		doctor.Name,
		doctor.Specialization,
		doctor.Department,
		doctor.Phone,
		doctor.Email,
		doctor.Status,
		doctor.Address,
		doctor.Qualification,
		doctor.ExperienceYears,
		doctor.JoiningDate,
		doctor.ConsultationFee,
		doctor.AadhaarNumber,
		doctor.PanNumber,
		doctor.BankName,
		doctor.BankAccountNo,
		doctor.BankIFSC,
		doctor.IsVerified,
	).Scan(&doctor.ID, &doctor.CreatedAt)
	if err != nil {
		return mapWriteError(err, "create doctor")
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (_ *model.Doctor, err error) {
	defer r.observe("doctors.get", time.Now(), &err)

	var doctor model.Doctor
	if err = r.db.GetContext(ctx, &doctor, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err, "doctor")
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) (_ []*model.Doctor, err error) {
	defer r.observe("doctors.list", time.Now(), &err)

	doctors := []*model.Doctor{}
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY created_at DESC, id DESC`
	if err = r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) (err error) {
	defer r.observe("doctors.delete", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err, "doctor")
	}
	return requireAffected(res, "doctor")
}
