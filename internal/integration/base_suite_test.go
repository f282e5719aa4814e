package integration_test

import (
	"context"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"time"

	"github.com/cinegood/purchase-api/internal/app"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	cacheImageName = "redis:7"
	testUserID     = "user-1"
)

type BaseSuite struct {
	suite.Suite
	app            *TestApp
	cacheContainer *RedisContainer
	catalogServer  *httptest.Server
	paymentServer  *httptest.Server
	server         *httptest.Server
	client         *http.Client
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	redisContainer, err := getCacheContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	s.cacheContainer = redisContainer

	catalog := newFakeCatalog()
	provider := &fakeProvider{}

	s.catalogServer = catalog.server()
	s.paymentServer = provider.server()

	cfg := app.Config{
		Port: 4000,
		Env:  "test",
		Redis: app.RedisConfig{
			URL:          redisContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		Backend: app.ServiceConfig{
			BaseURL: s.catalogServer.URL,
			Token:   "test-token",
		},
		Payment: app.ServiceConfig{
			BaseURL: s.paymentServer.URL,
			Token:   "test-token",
		},
	}

	testApp, err := newTestApp(cfg, catalog, provider)
	if err != nil {
		log.Printf("cannot initialize app: %s", err)
		return
	}

	s.app = testApp
	s.server = httptest.NewServer(testApp.App.Routes())

	// the purchase flow spans requests, so the session cookie must persist
	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Printf("cannot create cookie jar: %s", err)
		return
	}

	s.client = &http.Client{Jar: jar}
}

func (s *BaseSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.catalogServer != nil {
		s.catalogServer.Close()
	}
	if s.paymentServer != nil {
		s.paymentServer.Close()
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}
