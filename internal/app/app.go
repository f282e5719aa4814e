package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/cinegood/purchase-api/internal/backend"
	"github.com/cinegood/purchase-api/internal/domain"
	"github.com/cinegood/purchase-api/internal/mailer"
	"github.com/cinegood/purchase-api/internal/payment"
	"github.com/cinegood/purchase-api/internal/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

type Application struct {
	config         Config
	logger         *slog.Logger
	redis          redis.UniversalClient
	validator      *playgroundvalidator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager

	showtimeRepo domain.ShowtimeRepository
	couponRepo   domain.CouponRepository
	roomRepo     domain.RoomRepository

	preferenceProvider domain.PreferenceProvider
}

type Config struct {
	Port    int
	Env     string
	Redis   RedisConfig
	Backend ServiceConfig
	Payment ServiceConfig
	SMTP    SMTPConfig
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// ServiceConfig points at one of the external HTTP collaborators.
type ServiceConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

func New(cfg Config, logger *slog.Logger) (*Application, error) {
	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Token, cfg.Backend.Timeout)
	preferenceProvider := payment.NewPreferenceProvider(cfg.Payment.BaseURL, cfg.Payment.Token, cfg.Payment.Timeout)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)

	app := NewApp(
		cfg,
		logger,
		redisClient,
		validator.NewValidator(),
		smtpMailer,
		NewSessionManager(redisClient),
		backendClient,
		backendClient,
		backendClient,
		preferenceProvider,
	)

	return app, nil
}

// NewApp wires an Application from explicit collaborators. Production code
// goes through New; tests hand in their own stores and fakes here.
func NewApp(
	cfg Config,
	logger *slog.Logger,
	redisClient redis.UniversalClient,
	validate *playgroundvalidator.Validate,
	mailSender mailer.Mailer,
	sessionManager *scs.SessionManager,
	showtimeRepo domain.ShowtimeRepository,
	couponRepo domain.CouponRepository,
	roomRepo domain.RoomRepository,
	preferenceProvider domain.PreferenceProvider,
) *Application {
	return &Application{
		config:             cfg,
		logger:             logger,
		redis:              redisClient,
		validator:          validate,
		mailer:             mailSender,
		sessionManager:     sessionManager,
		showtimeRepo:       showtimeRepo,
		couponRepo:         couponRepo,
		roomRepo:           roomRepo,
		preferenceProvider: preferenceProvider,
	}
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func (app *Application) Close() {
	if client, ok := app.redis.(*redis.Client); ok {
		client.Close()
	}
}

func (app *Application) Run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.authenticate)

	r.Get("/health", app.GetHealth)

	r.Post("/salas/grid", app.GenerateRoomGridHandler)

	r.With(app.requireAuthentication).Route("/salas", func(r chi.Router) {
		r.Post("/", app.CreateRoomHandler)
		r.Put("/{salaId}", app.RenameRoomHandler)
	})

	r.Get("/funciones/{funcionId}/asientos", app.GetSeatMapByShowtimeHandler)

	r.With(app.requireAuthentication).Post("/funciones/{funcionId}/compra", app.StartPurchaseHandler)

	r.With(app.requireAuthentication).Route("/compra", func(r chi.Router) {
		r.Get("/", app.GetPurchaseSessionHandler)
		r.Delete("/", app.AbandonPurchaseHandler)
		r.Put("/asientos/{asientoFuncionId}", app.ToggleSeatHandler)
		r.Put("/cupon", app.SelectCouponHandler)
		r.Post("/confirmar", app.ConfirmPurchaseHandler)
	})

	r.With(app.requireAuthentication).Get("/pago", app.GetPaymentPageHandler)

	return r
}

// background runs fn in a goroutine, recovering and logging any panic so a
// side task can never take the request handler down with it.
func (app *Application) background(fn func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				app.logger.Error("background task panicked", "error", fmt.Sprintf("%v", err))
			}
		}()

		fn()
	}()
}
