package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/finstarter-go/apperror"
	"github.com/user/finstarter-go/auth"
	"github.com/user/finstarter-go/config"
	"github.com/user/finstarter-go/dashboard"
	"github.com/user/finstarter-go/db"
	"github.com/user/finstarter-go/logging"
	"github.com/user/finstarter-go/session"
	"github.com/user/finstarter-go/users"
)

// services holds everything the router needs. It is built once per process.
type services struct {
	store     *users.CredentialStore
	validator *users.Validator
	tokens    *session.TokenService
	cookies   *session.CookieManager
}

// newServices wires the credential store over repo and the session
// primitives from cfg. A missing signing secret is an error.
func newServices(cfg *config.AppConfig, repo users.Repository) (*services, error) {
	tokens, err := session.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		return nil, apperror.NewConfigError("invalid session configuration", err)
	}

	validator := users.NewValidator(cfg.Auth.PasswordMinLength)
	return &services{
		store:     users.NewCredentialStore(repo, users.NewBcryptHasher(cfg.Auth.BcryptCost), validator),
		validator: validator,
		tokens:    tokens,
		cookies:   session.NewCookieManager(cfg.Auth.CookieName, cfg.Auth.SecureCookies, cfg.Auth.SessionTTL),
	}, nil
}

// openRepository connects the configured backend. The returned func
// releases it.
func openRepository(ctx context.Context, cfg *config.DatabaseConfig) (users.Repository, func(), error) {
	log := logging.FromContext(ctx)

	switch cfg.Backend {
	case config.BackendPostgres:
		// Connects on first query; a database that is down at boot does not stop the server.
		pool := db.NewLazyPool(db.NewPostgresDialer(cfg.URL, cfg.MaxConns))
		log.Info(ctx, "using postgres credential store", "pool", pool.String())
		return users.NewPostgresRepository(pool), pool.Close, nil

	case config.BackendMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		repo := users.NewMongoRepository(client.Database(cfg.MongoDatabase).Collection(users.CollectionName))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, apperror.NewDatabaseError("error preparing users collection", err)
		}
		log.Info(ctx, "using mongo credential store", "database", cfg.MongoDatabase)
		closeFn := func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(shutdownCtx)
		}
		return repo, closeFn, nil

	case config.BackendMemory:
		log.Warn(ctx, "using in-memory credential store; users are lost on restart")
		return users.NewMemoryRepository(), func() {}, nil

	default:
		return nil, nil, apperror.NewConfigError(fmt.Sprintf("unknown store backend %q", cfg.Backend), nil)
	}
}

// requestLogger stores a child logger tagged with the chi request id in the
// request context, so handlers log with logging.FromContext.
func requestLogger(base logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := base.With("request_id", middleware.GetReqID(r.Context()))
			next.ServeHTTP(w, r.WithContext(logging.NewContext(r.Context(), l)))
		})
	}
}

// newRouter assembles middleware and routes.
func newRouter(cfg *config.AppConfig, svc *services, log logging.Logger) http.Handler {
	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Logger)
	r.Use(apperror.Recover)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(session.Guard(svc.tokens, svc.cookies, session.GuardConfig{
		ProtectedPrefix: cfg.Auth.ProtectedPrefix,
		LoginPath:       cfg.Auth.LoginPath,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		apperror.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authHandlers := auth.NewHandlers(svc.store, svc.validator, svc.tokens, svc.cookies, cfg.Auth.LoginPath)
	r.Route("/api/auth", authHandlers.RegisterRoutes)

	userHandlers := users.NewHandlers(svc.store, svc.validator)
	r.Route("/api/users", func(r chi.Router) {
		r.Use(session.RequireSession(svc.tokens, svc.cookies))
		userHandlers.RegisterRoutes(r)
	})

	// Page routes under the protected prefix; the guard above has already run.
	dash := dashboard.NewHandler(svc.store, svc.cookies, cfg.Auth.LoginPath)
	r.Get(cfg.Auth.ProtectedPrefix, dash.HandleDashboard())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apperror.WriteError(w, r, apperror.NewNotFoundError("Not found", nil))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apperror.WriteJSON(w, http.StatusMethodNotAllowed, apperror.ErrorResponse{Error: "Method not allowed"})
	})

	return r
}
