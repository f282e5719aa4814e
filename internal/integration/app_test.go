package integration_test

import (
	"log/slog"
	"os"
	"time"

	"github.com/cinegood/purchase-api/internal/app"
	"github.com/cinegood/purchase-api/internal/backend"
	"github.com/cinegood/purchase-api/internal/mailer"
	"github.com/cinegood/purchase-api/internal/payment"
	appvalidator "github.com/cinegood/purchase-api/internal/validator"
)

type TestApp struct {
	App     *app.Application
	Catalog *fakeCatalog
	Payment *fakeProvider
	Mailer  *mailer.MockMailer
}

func newTestApp(cfg app.Config, catalog *fakeCatalog, provider *fakeProvider) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Token, 5*time.Second)
	preferenceProvider := payment.NewPreferenceProvider(cfg.Payment.BaseURL, cfg.Payment.Token, 5*time.Second)

	application := app.NewApp(
		cfg,
		logger,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
		backendClient,
		backendClient,
		backendClient,
		preferenceProvider,
	)

	return &TestApp{
		App:     application,
		Catalog: catalog,
		Payment: provider,
		Mailer:  mockMailer,
	}, nil
}
