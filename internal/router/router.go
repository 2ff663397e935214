package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/medidesk-api/internal/handler"
	adminh "github.com/jwalitptl/medidesk-api/internal/handler/admin"
	appointmenth "github.com/jwalitptl/medidesk-api/internal/handler/appointment"
	authh "github.com/jwalitptl/medidesk-api/internal/handler/auth"
	dashboardh "github.com/jwalitptl/medidesk-api/internal/handler/dashboard"
	doctorh "github.com/jwalitptl/medidesk-api/internal/handler/doctor"
	emergencyh "github.com/jwalitptl/medidesk-api/internal/handler/emergency"
	"github.com/jwalitptl/medidesk-api/internal/handler/health"
	invoiceh "github.com/jwalitptl/medidesk-api/internal/handler/invoice"
	laundryh "github.com/jwalitptl/medidesk-api/internal/handler/laundry"
	machineryh "github.com/jwalitptl/medidesk-api/internal/handler/machinery"
	medicineh "github.com/jwalitptl/medidesk-api/internal/handler/medicine"
	metricsh "github.com/jwalitptl/medidesk-api/internal/handler/metrics"
	patienth "github.com/jwalitptl/medidesk-api/internal/handler/patient"
	payrollh "github.com/jwalitptl/medidesk-api/internal/handler/payroll"
	roomh "github.com/jwalitptl/medidesk-api/internal/handler/room"
	searchh "github.com/jwalitptl/medidesk-api/internal/handler/search"
	userh "github.com/jwalitptl/medidesk-api/internal/handler/user"
	"github.com/jwalitptl/medidesk-api/internal/middleware"
	"github.com/jwalitptl/medidesk-api/internal/repository"
	"github.com/jwalitptl/medidesk-api/internal/service/admin"
	"github.com/jwalitptl/medidesk-api/internal/service/appointment"
	authsvc "github.com/jwalitptl/medidesk-api/internal/service/auth"
	"github.com/jwalitptl/medidesk-api/internal/service/dashboard"
	"github.com/jwalitptl/medidesk-api/internal/service/doctor"
	"github.com/jwalitptl/medidesk-api/internal/service/emergency"
	"github.com/jwalitptl/medidesk-api/internal/service/invoice"
	"github.com/jwalitptl/medidesk-api/internal/service/laundry"
	"github.com/jwalitptl/medidesk-api/internal/service/machinery"
	"github.com/jwalitptl/medidesk-api/internal/service/medicine"
	"github.com/jwalitptl/medidesk-api/internal/service/patient"
	"github.com/jwalitptl/medidesk-api/internal/service/payroll"
	"github.com/jwalitptl/medidesk-api/internal/service/room"
	"github.com/jwalitptl/medidesk-api/internal/service/search"
	"github.com/jwalitptl/medidesk-api/internal/service/user"
	"github.com/jwalitptl/medidesk-api/pkg/auth"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/metrics"
	"github.com/jwalitptl/medidesk-api/pkg/security"
	"github.com/jwalitptl/medidesk-api/pkg/validator"
)

// Handler is implemented by every protected resource.
type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, allow handler.RoleGuard)
}

// Repositories is the storage the API runs on, postgres in production and
// the in-memory store in tests.
type Repositories struct {
	Patients          repository.PatientRepository
	Doctors           repository.DoctorRepository
	Appointments      repository.AppointmentRepository
	Invoices          repository.InvoiceRepository
	Medicines         repository.MedicineRepository
	Rooms             repository.RoomRepository
	Users             repository.UserRepository
	Ambulances        repository.AmbulanceRepository
	EmergencyContacts repository.EmergencyContactRepository
	Payroll           repository.PayrollRepository
	Machinery         repository.MachineryRepository
	Laundry           repository.LaundryRepository
	Search            repository.SearchRepository
	Admin             repository.AdminRepository
	Dashboard         repository.DashboardRepository
}

type Deps struct {
	Repos    Repositories
	Tokens   auth.JWTService
	Hasher   security.PasswordHasher
	Events   messaging.Publisher
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	DB       health.Pinger
}

type RouterConfig struct {
	EnforceAuth    bool
	RateLimit      rate.Limit
	RateBurst      int
	RateLimitIdle  time.Duration
	RateLimitOff   bool
	CORSConfig     middleware.CORSConfig
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	DashboardTTL   time.Duration
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	limiter  *middleware.RateLimiter
	config   RouterConfig
	authH    *authh.Handler
	healthH  *health.Handler
	metricsH *metricsh.Handler
	handlers []Handler
}

func NewRouter(deps Deps, config RouterConfig) *Router {
	if deps.Events == nil {
		deps.Events = messaging.NopPublisher{}
	}
	if deps.Metrics == nil {
		reg := prometheus.NewRegistry()
		deps.Metrics = metrics.New("medidesk", reg)
		deps.Gatherer = reg
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if config.RateLimit == 0 {
		config.RateLimit = rate.Every(time.Second)
	}
	if config.RateBurst <= 0 {
		config.RateBurst = 5
	}

	validator.RegisterJSONTagNames()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(deps.Metrics),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.SizeLimit(config.MaxBodyBytes),
		middleware.Timeout(config.RequestTimeout),
		middleware.CORS(config.CORSConfig),
	)

	repos := deps.Repos
	dash := dashboard.NewService(repos.Dashboard, config.DashboardTTL, deps.Metrics)
	events := dash.InvalidateOn(deps.Events)

	r := &Router{
		engine: engine,
		auth:   middleware.NewAuthMiddleware(deps.Tokens, config.EnforceAuth),
		limiter: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:        config.RateLimit,
			Burst:       config.RateBurst,
			IdleTimeout: config.RateLimitIdle,
		}),
		config:   config,
		authH:    authh.NewHandler(authsvc.NewService(repos.Users, deps.Hasher, deps.Tokens)),
		healthH:  health.NewHandler(deps.DB),
		metricsH: metricsh.NewHandler(deps.Gatherer),
		handlers: []Handler{
			patienth.NewHandler(patient.NewService(repos.Patients, events)),
			doctorh.NewHandler(doctor.NewService(repos.Doctors, events)),
			appointmenth.NewHandler(appointment.NewService(repos.Appointments, events)),
			invoiceh.NewHandler(invoice.NewService(repos.Invoices, events)),
			medicineh.NewHandler(medicine.NewService(repos.Medicines, events)),
			roomh.NewHandler(room.NewService(repos.Rooms, events)),
			userh.NewHandler(user.NewService(repos.Users, deps.Hasher, events)),
			emergencyh.NewHandler(emergency.NewService(repos.Ambulances, repos.EmergencyContacts, events)),
			payrollh.NewHandler(payroll.NewService(repos.Payroll, events)),
			machineryh.NewHandler(machinery.NewService(repos.Machinery, events)),
			laundryh.NewHandler(laundry.NewService(repos.Laundry, events)),
			searchh.NewHandler(search.NewService(repos.Search)),
			adminh.NewHandler(admin.NewService(repos.Admin)),
			dashboardh.NewHandler(dash),
		},
	}
	r.handlers = append(r.handlers, r.authH)

	return r
}

func (r *Router) Setup() {
	r.healthH.RegisterRoutes(r.engine)
	r.metricsH.RegisterRoutes(r.engine)

	api := r.engine.Group("/api")

	limiter := r.limiter.RateLimit()
	if r.config.RateLimitOff {
		limiter = handler.AllowAll()
	}
	r.authH.RegisterPublicRoutes(api, limiter)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate(), r.auth.RequireRole())
	for _, h := range r.handlers {
		h.RegisterRoutes(protected, r.auth.RequireRole)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
