package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medidesk-api/internal/model"
	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
	"github.com/jwalitptl/medidesk-api/pkg/metrics"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func strPtr(s string) *string { return &s }

func TestPatientCreate(t *testing.T) {
	db, mock := newMock(t)
	m := metrics.New("medidesk_test", prometheus.NewRegistry())
	repo := NewPatientRepository(db, m)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO patients")).
		WithArgs("Asha", "Rao", "1990-01-01", "Female", "9999999999",
			nil, nil, nil, nil, nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(41, now))

	p := &model.Patient{
		FirstName: "Asha",
		LastName:  "Rao",
		DOB:       model.NewDate(1990, time.January, 1),
		Gender:    "Female",
		Phone:     "9999999999",
	}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(41), p.ID)
	assert.Equal(t, now, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("patients.create", "success")))
}

func TestPatientGetNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPatientRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM patients WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 9)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestPatientDeleteReleasesRooms(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPatientRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms SET status = $1, patient_id = NULL WHERE patient_id = $2")).
		WithArgs(model.RoomStatusAvailable, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM patients WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientDeleteMissingRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPatientRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM patients")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 5)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientDeleteWithAppointmentsConflicts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPatientRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE rooms")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM patients")).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "fk_appointments_patient"})
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 5)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "patient has dependent records", appErr.Message)
}

func TestRoomCreateDuplicateNumber(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRoomRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rooms")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_rooms_room_number"})

	room := &model.Room{RoomNumber: "101", Type: model.RoomTypeGeneral, Status: model.RoomStatusAvailable}
	err := repo.Create(context.Background(), room)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "Room number already exists", appErr.Message)
	assert.Zero(t, room.ID)
}

func TestInvoiceCreateNumericOverflow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInvoiceRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices")).
		WillReturnError(&pq.Error{Code: "22003", Message: "numeric field overflow"})

	err := repo.Create(context.Background(), &model.Invoice{PatientID: 1, Amount: 99999999, Tax: 99999999, Total: 199999998})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "numeric value out of range")
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_users_username"})

	err := repo.Create(context.Background(), &model.User{Username: "admin", PasswordHash: "x", Role: "admin"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Username already exists", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdateKeepsPasswordWhenBlank(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("password = COALESCE($4, password)")).
		WithArgs("Nurse Joy", nil, "123", nil, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &model.UserUpdate{
		ID:       3,
		FullName: strPtr("Nurse Joy"),
		Phone:    strPtr("123"),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentCreateUnknownDoctor(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAppointmentRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "fk_appointments_doctor"})

	err := repo.Create(context.Background(), &model.Appointment{PatientID: 1, DoctorID: 99, Status: "Scheduled"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	assert.Equal(t, "doctor does not exist", appErr.Message)
}

func TestAppointmentListJoinsNames(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAppointmentRepository(db, nil)

	at := time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "patient_id", "doctor_id", "appointment_date", "reason", "status", "created_at",
		"patient_name", "patient_phone", "doctor_name", "doctor_specialization", "doctor_department",
	}).AddRow(1, 41, 2, at, nil, "Scheduled", time.Now(),
		"Asha Rao", "9999999999", "Dr. Mehta", "Cardiology", nil)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY a.appointment_date ASC")).WillReturnRows(rows)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].PatientName)
	assert.Equal(t, "Asha Rao", *list[0].PatientName)
	assert.Equal(t, at, list[0].AppointmentDate.Time)
	assert.Nil(t, list[0].DoctorDepartment)
}

func TestAdminListTablesAndRows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAdminRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("medicines").AddRow("patients"))

	tables, err := repo.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"medicines", "patients"}, tables)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "medicines" LIMIT $1`)).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).
			AddRow(int64(1), []byte("Vitamin C"), []byte("5.00")))

	rows, err := repo.SelectRows(context.Background(), "medicines", 100)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Vitamin C", rows[0]["name"])
	assert.Equal(t, "5.00", rows[0]["price"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchPatientsBindsPattern(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSearchRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM patients")).
		WithArgs("%9999%", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "phone"}).
			AddRow(41, "Asha", "Rao", "9999999999"))

	hits, err := repo.SearchPatients(context.Background(), "%9999%", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Asha", hits[0].FirstName)
}

func TestDoctorDeleteWithAppointmentsConflicts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDoctorRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM doctors")).
		WithArgs(int64(2)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "fk_appointments_doctor"})

	err := repo.Delete(context.Background(), 2)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestMedicineUpdateNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMedicineRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE medicines")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Medicine{ID: 77, Name: "Ghost", Price: 1})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestDashboardStats(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDashboardRepository(db, nil)

	day := time.Date(2030, 5, 1, 15, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("AS appointments_today")).
		WithArgs(
			time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2030, 5, 2, 0, 0, 0, 0, time.UTC),
			"Pending", 50, "Available", "On Call", "Under Maintenance",
		).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_patients", "total_doctors", "appointments_today", "pending_invoices",
			"low_stock_medicines", "available_rooms", "ambulances_on_call", "machinery_in_maintenance",
		}).AddRow(10, 4, 2, 3, 1, 5, 1, 1))

	stats, err := repo.Stats(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalPatients)
	assert.Equal(t, 1, stats.LowStockMedicines)
	assert.NoError(t, mock.ExpectationsWereMet())
}
