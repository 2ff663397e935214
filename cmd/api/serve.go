package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/medidesk-api/internal/config"
	"github.com/jwalitptl/medidesk-api/internal/middleware"
	"github.com/jwalitptl/medidesk-api/internal/repository/postgres"
	"github.com/jwalitptl/medidesk-api/internal/router"
	"github.com/jwalitptl/medidesk-api/pkg/auth"
	"github.com/jwalitptl/medidesk-api/pkg/messaging"
	"github.com/jwalitptl/medidesk-api/pkg/messaging/redis"
	"github.com/jwalitptl/medidesk-api/pkg/metrics"
	"github.com/jwalitptl/medidesk-api/pkg/security"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	if !cfg.Auth.Enforce {
		log.Warn().Msg("authorization is not enforced; do not run this configuration in production")
	}

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New("medidesk", reg)

	events, closeEvents := newPublisher(ctx, cfg, m)
	defer closeEvents()

	r := router.NewRouter(router.Deps{
		Repos:    postgresRepositories(db, m),
		Tokens:   auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry()),
		Hasher:   security.NewBcryptHasher(security.DefaultCost),
		Events:   events,
		Metrics:  m,
		Gatherer: reg,
		DB:       db,
	}, router.RouterConfig{
		EnforceAuth:    cfg.Auth.Enforce,
		RateLimit:      rate.Limit(cfg.RateLimit.LoginPerSecond),
		RateBurst:      cfg.RateLimit.LoginBurst,
		RateLimitIdle:  cfg.RateLimit.ClientIdleTimeout,
		RateLimitOff:   !cfg.RateLimit.Enabled,
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		DashboardTTL:   cfg.Dashboard.CacheTTL,
		CORSConfig: middleware.CORSConfig{
			AllowOrigins: cfg.CORS.AllowedOrigins,
			AllowMethods: cfg.CORS.AllowedMethods,
			AllowHeaders: cfg.CORS.AllowedHeaders,
		},
	})
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server...")

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}

// newPublisher connects the Redis broker when configured. Events are
// best-effort, so an unreachable broker degrades to dropping them.
func newPublisher(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (messaging.Publisher, func()) {
	if !cfg.Redis.Enabled() {
		log.Info().Msg("redis not configured; domain events are disabled")
		return messaging.NopPublisher{}, func() {}
	}

	broker, err := redis.NewRedisBroker(ctx, cfg.Redis.ToBrokerConfig(), log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable; domain events are disabled")
		return messaging.NopPublisher{}, func() {}
	}

	closeFn := func() {
		if err := broker.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis broker")
		}
	}
	return messaging.NewEventPublisher(broker, cfg.Redis.Channel, m), closeFn
}

func postgresRepositories(db *sqlx.DB, m *metrics.Metrics) router.Repositories {
	return router.Repositories{
		Patients:          postgres.NewPatientRepository(db, m),
		Doctors:           postgres.NewDoctorRepository(db, m),
		Appointments:      postgres.NewAppointmentRepository(db, m),
		Invoices:          postgres.NewInvoiceRepository(db, m),
		Medicines:         postgres.NewMedicineRepository(db, m),
		Rooms:             postgres.NewRoomRepository(db, m),
		Users:             postgres.NewUserRepository(db, m),
		Ambulances:        postgres.NewAmbulanceRepository(db, m),
		EmergencyContacts: postgres.NewEmergencyContactRepository(db, m),
		Payroll:           postgres.NewPayrollRepository(db, m),
		Machinery:         postgres.NewMachineryRepository(db, m),
		Laundry:           postgres.NewLaundryRepository(db, m),
		Search:            postgres.NewSearchRepository(db, m),
		Admin:             postgres.NewAdminRepository(db, m),
		Dashboard:         postgres.NewDashboardRepository(db, m),
	}
}
