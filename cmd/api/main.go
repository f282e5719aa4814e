package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cinegood/purchase-api/internal/app"
	"github.com/cinegood/purchase-api/internal/vcs"
)

var (
	version = vcs.Version()
)

func main() {
	var cfg app.Config

	flag.IntVar(&cfg.Port, "port", 4000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.Backend.BaseURL, "backend-url", "http://localhost:3000/api", "Catalog backend base URL")
	flag.StringVar(&cfg.Backend.Token, "backend-token", "", "Catalog backend service token")
	flag.DurationVar(&cfg.Backend.Timeout, "backend-timeout", 10*time.Second, "Catalog backend request timeout")

	flag.StringVar(&cfg.Payment.BaseURL, "payment-url", "http://localhost:3000/api", "Payment provider base URL")
	flag.StringVar(&cfg.Payment.Token, "payment-token", "", "Payment provider access token")
	flag.DurationVar(&cfg.Payment.Timeout, "payment-timeout", 10*time.Second, "Payment provider request timeout")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "CineGood <no-reply@cinegood.example>", "SMTP sender")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer application.Close()

	err = application.Run()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
