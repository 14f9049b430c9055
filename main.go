package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/blogem/honeypot-telemetry/authenticator"
	"github.com/blogem/honeypot-telemetry/config"
	"github.com/blogem/honeypot-telemetry/controllers"
	"github.com/blogem/honeypot-telemetry/database"
	"github.com/blogem/honeypot-telemetry/geoip"
	"github.com/blogem/honeypot-telemetry/logger"
	hpmiddleware "github.com/blogem/honeypot-telemetry/middleware"
	"github.com/blogem/honeypot-telemetry/objectstore"
	"github.com/blogem/honeypot-telemetry/repositories"
	"github.com/blogem/honeypot-telemetry/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables from .env file
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load the env vars: %v", err)
	}

	cfg, cfgErr := config.Load()

	zl, err := logger.New(cfg.Environment, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync(zl)

	if cfgErr != nil {
		zl.Warn("malformed configuration values, using defaults", zap.Error(cfgErr))
	}

	if err := run(cfg, zl); err != nil {
		zl.Error("honeypot stopped with error", zap.Error(err))
		logger.Sync(zl)
		os.Exit(1)
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Initialize(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	opts := services.Options{
		GeoTimeout:    cfg.GeoIPTimeout,
		QueueSize:     cfg.TelemetryQueueSize,
		DemoMode:      cfg.DemoMode,
		DemoSeed:      uint64(time.Now().UnixNano()),
		ArchivePrefix: cfg.ArchivePrefix,
	}

	closeGeo, err := setupGeoLookup(cfg, &opts, zl)
	if err != nil {
		return err
	}
	defer closeGeo()

	if cfg.ArchiveEnabled() {
		uploader, err := objectstore.NewS3Uploader(ctx, cfg.AWSRegion, cfg.ArchiveBucket)
		if err != nil {
			return fmt.Errorf("failed to initialize archive uploader: %w", err)
		}
		opts.Uploader = uploader
	}

	// Initialize services
	srvs := services.NewServices(repos, opts, zl)

	var auth authenticator.Provider
	if cfg.AuthEnabled() {
		auth, err = authenticator.NewOIDCProvider(ctx, authenticator.Config{
			Domain:       cfg.OIDCDomain,
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			CallbackURL:  cfg.OIDCCallbackURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize OIDC provider: %w", err)
		}
	} else {
		zl.Warn("OIDC_DOMAIN is not set, the query API is open to anyone")
	}

	if cfg.DemoMode {
		zl.Warn("demo mode enabled, client addresses and locations are synthetic")
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, auth, cfg.DecoyDir, zl)

	// operator routes carry OAuth codes and are kept out of the request log
	tel := hpmiddleware.NewTelemetry(srvs.Telemetry.Observe, cfg.MaxBodyBytes, "/_ops")

	r, err := setupRouter(cfg, ctrl, tel, auth != nil, zl)
	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zl.Info("honeypot listening",
			zap.String("port", cfg.Port),
			zap.String("database", cfg.DBPath),
			zap.String("decoy_dir", cfg.DecoyDir))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			zl.Error("http shutdown incomplete", zap.Error(err))
		}
		if err := tel.Wait(shutdownCtx); err != nil {
			zl.Error("telemetry hooks still running", zap.Error(err))
		}
		// pending records are flushed before the database closes
		if err := srvs.Sink.Close(shutdownCtx); err != nil {
			zl.Error("telemetry sink did not drain", zap.Error(err))
		}
		return nil
	})

	if srvs.Archiver != nil {
		g.Go(func() error {
			zl.Info("threat archiver started",
				zap.String("bucket", cfg.ArchiveBucket),
				zap.Duration("interval", cfg.ArchiveInterval))
			return srvs.Archiver.Run(gctx, cfg.ArchiveInterval)
		})
	}

	return g.Wait()
}

// setupGeoLookup prefers a local MaxMind database over the HTTP lookup service.
// With neither configured, records are stored without location.
func setupGeoLookup(cfg config.Config, opts *services.Options, zl *zap.Logger) (func(), error) {
	switch {
	case cfg.GeoIPDBPath != "":
		mm, err := geoip.OpenMaxMind(cfg.GeoIPDBPath)
		if err != nil {
			return nil, err
		}
		opts.GeoLookup = mm
		zl.Info("geolocation via maxmind database", zap.String("path", cfg.GeoIPDBPath))
		return func() { mm.Close() }, nil
	case cfg.GeoIPAPIURL != "":
		opts.GeoLookup = geoip.NewAPILookup(cfg.GeoIPAPIURL, cfg.GeoIPTimeout)
		zl.Info("geolocation via lookup service", zap.String("url", cfg.GeoIPAPIURL))
	default:
		zl.Info("geolocation disabled")
	}
	return func() {}, nil
}

// setupRouter configures all routes
func setupRouter(cfg config.Config, ctrl *controllers.Controllers, tel *hpmiddleware.Telemetry, authEnabled bool, zl *zap.Logger) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(tel.Handler)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout for OAuth callbacks
	r.Use(middleware.Compress(5))

	// One store for both groups so a login is visible to the API
	sessions, err := hpmiddleware.Sessions(cfg.UseHTTPS)
	if err != nil {
		return nil, err
	}

	r.NotFound(ctrl.Decoy.Serve)
	r.MethodNotAllowed(ctrl.Decoy.Serve)

	r.Route("/_ops", func(r chi.Router) {
		r.Get("/health", ctrl.Decoy.Health)

		if authEnabled {
			r.Group(func(r chi.Router) {
				r.Use(sessions)
				r.Get("/login", ctrl.Auth.Login)
				r.Get("/callback", ctrl.Auth.Callback)
				r.Get("/logout", ctrl.Auth.Logout)
			})
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		if authEnabled {
			r.Use(sessions)
			r.Use(hpmiddleware.RequireOperator)
		}
		r.Use(hpmiddleware.OperatorAudit(zl))

		r.Get("/logs", ctrl.API.Logs)
		r.Get("/stats", ctrl.API.Stats)
		r.Get("/threats", ctrl.API.Threats)
		r.Get("/ips", ctrl.API.IPs)
	})

	// Everything else is the decoy site
	r.Handle("/*", http.HandlerFunc(ctrl.Decoy.Serve))

	return r, nil
}
