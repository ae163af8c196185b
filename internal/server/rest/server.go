// Package rest exposes the ShopNet services over JSON/HTTP.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/logging"
	"github.com/dmitrijs2005/shopnet/internal/server/models"
	"github.com/dmitrijs2005/shopnet/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type IdentityService interface {
	Register(ctx context.Context, email, password, name string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	UpdateAccountType(ctx context.Context, userID string, accountType api.AccountType, fields api.ProfileFields) (*models.User, error)
	Authorize(ctx context.Context, token string) (*services.Identity, error)
	AuthorizeProductOwner(ctx context.Context, identity *services.Identity, productID string) (*models.Product, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req api.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UpdateNotificationPreferences(ctx context.Context, userID string, email, orders bool) (*models.User, error)
}

type ProductService interface {
	Create(ctx context.Context, identity *services.Identity, req api.ProductRequest) (*models.Product, error)
	List(ctx context.Context, identity *services.Identity, sellerView bool) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, owned *models.Product, req api.ProductRequest) (*models.Product, error)
	Delete(ctx context.Context, owned *models.Product) error
}

type NotificationService interface {
	List(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

type ImageService interface {
	PresignUpload(ctx context.Context, userID string) (*api.PresignResponse, error)
}

// Options are the HTTP-level settings of the server.
type Options struct {
	Address                string
	CORSAllowedOrigins     []string
	AuthRateLimitPerMinute int
}

type Server struct {
	opts          Options
	logger        logging.Logger
	identity      IdentityService
	products      ProductService
	notifications NotificationService
	images        ImageService
	limiter       *IPRateLimiter
	metrics       *Metrics
}

func NewServer(opts Options, l logging.Logger, is IdentityService, ps ProductService,
	ns NotificationService, im ImageService) *Server {
	logger := l.With("module", "rest_server")
	return &Server{
		opts:          opts,
		logger:        logger,
		identity:      is,
		products:      ps,
		notifications: ns,
		images:        im,
		limiter:       NewIPRateLimiter(opts.AuthRateLimitPerMinute, logger),
		metrics:       NewMetrics(),
	}
}

// Router builds the complete handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(s.limiter.Middleware)
				r.Post("/register", s.handleRegister)
				r.Post("/login", s.handleLogin)
				r.Post("/refresh", s.handleRefresh)
			})
			r.Group(func(r chi.Router) {
				r.Use(s.authenticate)
				r.Get("/me", s.handleMe)
				r.Put("/account-type", s.handleUpdateAccountType)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(s.authenticate)
			r.Put("/profile", s.handleUpdateProfile)
			r.Put("/password", s.handleChangePassword)
			r.Put("/notifications", s.handleNotificationPreferences)
		})

		r.Route("/products", func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/", s.handleListProducts)
			r.Post("/", s.handleCreateProduct)
			r.Get("/{id}", s.handleGetProduct)
			r.Put("/{id}", s.handleUpdateProduct)
			r.Delete("/{id}", s.handleDeleteProduct)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/", s.handleListNotifications)
			r.Put("/mark-all-read", s.handleMarkAllRead)
			r.Put("/{id}/read", s.handleMarkRead)
			r.Delete("/{id}", s.handleDeleteNotification)
		})

		r.With(s.authenticate).Post("/images/presign", s.handlePresign)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.limiter.cleanupVisitors(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "ok"})
}
