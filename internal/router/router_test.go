package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/medidesk-api/internal/model"
	"github.com/jwalitptl/medidesk-api/internal/repository/memory"
	"github.com/jwalitptl/medidesk-api/pkg/auth"
	"github.com/jwalitptl/medidesk-api/pkg/messaging/messagingtest"
	"github.com/jwalitptl/medidesk-api/pkg/security"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

type testAPI struct {
	engine *gin.Engine
	store  *memory.Store
	tokens auth.JWTService
	events *messagingtest.Recorder
}

func repositoriesFrom(s *memory.Store) Repositories {
	return Repositories{
		Patients:          s.Patients(),
		Doctors:           s.Doctors(),
		Appointments:      s.Appointments(),
		Invoices:          s.Invoices(),
		Medicines:         s.Medicines(),
		Rooms:             s.Rooms(),
		Users:             s.Users(),
		Ambulances:        s.Ambulances(),
		EmergencyContacts: s.EmergencyContacts(),
		Payroll:           s.Payroll(),
		Machinery:         s.Machinery(),
		Laundry:           s.Laundry(),
		Search:            s.Search(),
		Admin:             s.Admin(),
		Dashboard:         s.Dashboard(),
	}
}

func newTestAPI(t *testing.T, config RouterConfig) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewJWTService("router-test-secret", time.Hour)
	events := &messagingtest.Recorder{}

	hash, err := hasher.Hash("admin-password")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &model.User{
		Username:     "admin",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		FullName:     model.StringPtr("Site Admin"),
	}))

	r := NewRouter(Deps{
		Repos:  repositoriesFrom(store),
		Tokens: tokens,
		Hasher: hasher,
		Events: events,
		DB:     stubPinger{},
	}, config)
	r.Setup()

	return &testAPI{engine: r.Engine(), store: store, tokens: tokens, events: events}
}

func (a *testAPI) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := a.tokens.GenerateAccessToken(auth.Session{UserID: 1, Username: role, Role: role})
	require.NoError(t, err)
	return tok
}

func (a *testAPI) tokenFor(t *testing.T, id int64, role string) string {
	t.Helper()
	tok, err := a.tokens.GenerateAccessToken(auth.Session{UserID: id, Username: role, Role: role})
	require.NoError(t, err)
	return tok
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestPatientAppointmentFlow(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true})
	admin := api.token(t, model.RoleAdmin)

	w := api.do(t, http.MethodPost, "/api/doctors", admin, map[string]interface{}{
		"name":           "Dr. Mehta",
		"specialization": "Cardiology",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var doc struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &doc)

	w = api.do(t, http.MethodPost, "/api/patients", admin, map[string]interface{}{
		"firstName":   "Asha",
		"lastName":    "Rao",
		"dateOfBirth": "1990-01-01",
		"gender":      "Female",
		"phone":       "9999999999",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	decode(t, w, &created)
	assert.Equal(t, "Patient registered successfully", created.Message)

	future := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	w = api.do(t, http.MethodPost, "/api/appointments", admin, map[string]interface{}{
		"patientId":       created.ID,
		"doctorId":        doc.ID,
		"appointmentDate": future,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/appointments", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]interface{}
	decode(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Asha Rao", rows[0]["patient_name"])
	assert.Equal(t, model.AppointmentStatusScheduled, rows[0]["status"])

	assert.Contains(t, api.events.Types(), "patient.registered")
	assert.Contains(t, api.events.Types(), "appointment.booked")
}

func TestUsersRequireAdmin(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true})

	w := api.do(t, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodGet, "/api/users", api.token(t, model.RoleReceptionist), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Insufficient permissions"}`, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/users", api.token(t, model.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRoleTable(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true})

	cases := []struct {
		method, path, role string
		want               int
	}{
		{http.MethodGet, "/api/invoices", model.RoleDoctor, http.StatusForbidden},
		{http.MethodGet, "/api/invoices", model.RoleReceptionist, http.StatusOK},
		{http.MethodGet, "/api/medicines", model.RoleNurse, http.StatusOK},
		{http.MethodPost, "/api/medicines", model.RoleNurse, http.StatusForbidden},
		{http.MethodPost, "/api/doctors", model.RoleReceptionist, http.StatusForbidden},
		{http.MethodDelete, "/api/patients/1", model.RoleDoctor, http.StatusForbidden},
		{http.MethodGet, "/api/payroll", model.RolePharmacist, http.StatusForbidden},
		{http.MethodPost, "/api/laundry", model.RoleDoctor, http.StatusForbidden},
		{http.MethodGet, "/api/admin/tables", model.RoleNurse, http.StatusForbidden},
		{http.MethodGet, "/api/dashboard/stats", model.RoleNurse, http.StatusOK},
		{http.MethodGet, "/api/auth/me", model.RoleDoctor, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path+" as "+tc.role, func(t *testing.T) {
			w := api.do(t, tc.method, tc.path, api.token(t, tc.role), map[string]interface{}{})
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestNotEnforcedAdmitsAnonymous(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: false})

	w := api.do(t, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true, RateLimitOff: true})

	w := api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "admin-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp model.LoginResponse
	decode(t, w, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Username)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	w = api.do(t, http.MethodGet, "/api/auth/me", resp.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)

	for _, body := range []map[string]string{
		{"username": "admin", "password": "wrong-password"},
		{"username": "ghost", "password": "admin-password"},
		{"username": "admin"},
	} {
		w = api.do(t, http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"status":"error","message":"Invalid credentials"}`, w.Body.String())
	}
}

func TestProfileUpdateKeepsOmittedFields(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true})
	admin := api.token(t, model.RoleAdmin)
	ctx := context.Background()

	w := api.do(t, http.MethodPut, "/api/users/1", admin, map[string]string{
		"full_name": "Renamed Admin",
		"email":     "a@b.co",
		"phone":     "123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	u, err := api.store.Users().GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, u.FullName)
	assert.Equal(t, "Renamed Admin", *u.FullName)
	assert.Equal(t, "a@b.co", *u.Email)
	assert.Equal(t, "123", *u.Phone)

	w = api.do(t, http.MethodPut, "/api/users/1", admin, map[string]string{"password": "new-password-1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	u, err = api.store.Users().GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, u.FullName)
	assert.Equal(t, "Renamed Admin", *u.FullName)
	assert.Equal(t, "a@b.co", *u.Email)
	assert.Equal(t, "123", *u.Phone)

	w = api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "new-password-1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffUpdateOwnProfile(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true})
	ctx := context.Background()

	clerk := &model.User{Username: "clerk", PasswordHash: "x", Role: model.RoleReceptionist}
	require.NoError(t, api.store.Users().Create(ctx, clerk))
	own := api.tokenFor(t, clerk.ID, model.RoleReceptionist)

	w := api.do(t, http.MethodPut, "/api/users/"+strconv.FormatInt(clerk.ID, 10), own, map[string]string{
		"full_name": "Front Desk",
		"password":  "clerk-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got, err := api.store.Users().GetByID(ctx, clerk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Front Desk", *got.FullName)

	w = api.do(t, http.MethodPut, "/api/users/1", own, map[string]string{"full_name": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Insufficient permissions"}`, w.Body.String())
	admin, err := api.store.Users().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Site Admin", *admin.FullName)

	w = api.do(t, http.MethodDelete, "/api/users/1", own, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDashboardReflectsWrites(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true})
	admin := api.token(t, model.RoleAdmin)

	stats := func() model.DashboardStats {
		w := api.do(t, http.MethodGet, "/api/dashboard/stats", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var s model.DashboardStats
		decode(t, w, &s)
		return s
	}

	assert.Equal(t, 0, stats().TotalDoctors)

	w := api.do(t, http.MethodPost, "/api/doctors", admin, map[string]interface{}{
		"name":           "Dr. Sen",
		"specialization": "Neurology",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, 1, stats().TotalDoctors)
	assert.Contains(t, api.events.Types(), "doctor.created")
}

func TestLoginRateLimited(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true, RateBurst: 2})

	body := map[string]string{"username": "admin", "password": "wrong-password"}
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodPost, "/api/auth/login", "", body).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodPost, "/api/auth/login", "", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, api.do(t, http.MethodPost, "/api/auth/login", "", body).Code)
}

func TestSearchShortQueryIssuesNoQueries(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true})
	before := api.store.TotalQueries()

	w := api.do(t, http.MethodGet, "/api/search?q=a", api.token(t, model.RoleDoctor), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"patients":[],"doctors":[],"medicines":[]}`, w.Body.String())
	assert.Equal(t, before, api.store.TotalQueries())
}

func TestAdminBrowser(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true})
	admin := api.token(t, model.RoleAdmin)
	before := api.store.TotalQueries()

	w := api.do(t, http.MethodGet, "/api/admin/tables/pg_shadow", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Invalid table name"}`, w.Body.String())
	assert.Zero(t, api.store.Queries("admin.select_rows:pg_shadow"))

	w = api.do(t, http.MethodGet, "/api/admin/tables/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"password":"[redacted]"`)
	assert.Greater(t, api.store.TotalQueries(), before)
}

func TestInvoiceTotalRederived(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true})
	admin := api.token(t, model.RoleAdmin)

	w := api.do(t, http.MethodPost, "/api/patients", admin, map[string]interface{}{
		"firstName": "Ravi", "lastName": "Kumar", "dateOfBirth": "1985-05-05",
		"gender": "Male", "phone": "8888888888",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var p struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &p)

	w = api.do(t, http.MethodPost, "/api/invoices", admin, map[string]interface{}{
		"patientId": p.ID, "amount": 100, "tax": 18, "total": 120, "invoiceDate": "2026-01-10",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/api/invoices", admin, map[string]interface{}{
		"patientId": p.ID, "amount": 100, "tax": 18, "invoiceDate": "2026-01-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/invoices", admin, nil)
	var rows []map[string]interface{}
	decode(t, w, &rows)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 118, rows[0]["total"])
}

func TestMalformedRequests(t *testing.T) {
	api := newTestAPI(t, RouterConfig{EnforceAuth: true})
	admin := api.token(t, model.RoleAdmin)

	w := api.do(t, http.MethodGet, "/api/patients/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/patients/999", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodPost, "/api/patients", admin, map[string]interface{}{"firstName": "Only"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "lastName")

	w = api.do(t, http.MethodPost, "/api/invoices", admin, map[string]interface{}{
		"patientId": 1, "amount": 1e9, "invoiceDate": "2026-01-10",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t, RouterConfig{})

	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/health/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/health/ready", "", nil).Code)

	// One request has been observed by the time metrics are scraped.
	w := api.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "medidesk_http_requests_total")
}

func TestReadinessReportsDatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(Deps{
		Repos:  repositoriesFrom(memory.New()),
		Tokens: auth.NewJWTService("x", time.Hour),
		Hasher: security.NewBcryptHasher(bcrypt.MinCost),
		DB:     stubPinger{err: errors.New("connection refused")},
	}, RouterConfig{})
	r.Setup()

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
