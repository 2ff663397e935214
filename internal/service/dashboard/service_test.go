package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository/memory"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/messaging/messagingtest"
	"github.com/jwalitptl/medidesk-api/pkg/metrics"
)

func TestStatsCountsAndCaches(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	m := metrics.New("medidesk_test", prometheus.NewRegistry())
	svc := NewService(store.Dashboard(), time.Minute, m)

	p := &model.Patient{FirstName: "Asha", LastName: "Rao", DOB: model.NewDate(1990, 1, 1), Gender: model.GenderFemale, Phone: "9"}
	require.NoError(t, store.Patients().Create(ctx, p))
	d := &model.Doctor{Name: "Dr. Iyer", Specialization: "ENT", Status: model.DoctorStatusActive}
	require.NoError(t, store.Doctors().Create(ctx, d))
	require.NoError(t, store.Appointments().Create(ctx, &model.Appointment{
		PatientID: p.ID, DoctorID: d.ID, AppointmentDate: model.DateTime{Time: time.Now()}, Status: model.AppointmentStatusScheduled,
	}))
	require.NoError(t, store.Medicines().Create(ctx, &model.Medicine{Name: "Low", Stock: 3, Price: 1}))
	require.NoError(t, store.Medicines().Create(ctx, &model.Medicine{Name: "High", Stock: 300, Price: 1}))
	require.NoError(t, store.Rooms().Create(ctx, &model.Room{RoomNumber: "1", Type: model.RoomTypeICU, PricePerDay: 1, Status: model.RoomStatusAvailable}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPatients)
	assert.Equal(t, 1, stats.TotalDoctors)
	assert.Equal(t, 1, stats.AppointmentsToday)
	assert.Equal(t, 1, stats.LowStockMedicines)
	assert.Equal(t, 1, stats.AvailableRooms)
	assert.False(t, stats.GeneratedAt.IsZero())

	require.NoError(t, store.Patients().Create(ctx, &model.Patient{FirstName: "B", LastName: "C", DOB: model.NewDate(2000, 1, 1), Gender: model.GenderOther, Phone: "1"}))

	cached, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.TotalPatients)
	assert.Equal(t, 1, store.Queries("dashboard.stats"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("dashboard", "hit")))

	events := &messagingtest.Recorder{}
	svc.InvalidateOn(events).Publish(ctx, messaging.EventPatientRegistered, nil)
	assert.Equal(t, []string{messaging.EventPatientRegistered}, events.Types())

	fresh, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.TotalPatients)
}
