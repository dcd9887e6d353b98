package main

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sharedesk/internal/cloud"
	"sharedesk/internal/config"
	"sharedesk/internal/handlers"
	"sharedesk/internal/mail"
	"sharedesk/internal/repositories"
	"sharedesk/internal/services"
	"sharedesk/internal/storage"
	"sharedesk/internal/ws"
	"sharedesk/utils"
)

type application struct {
	cfg    config.Config
	logger *zap.SugaredLogger
	db     *sql.DB
	hub    *ws.Hub
	relay  *ws.Relay
	redis  *redis.Client
	tokens *utils.Manager

	spaceHandler        *handlers.SpaceHandler
	rentalHandler       *handlers.RentalHandler
	notificationHandler *handlers.NotificationHandler
}

func initializeApp(cfg config.Config, db *sql.DB, logger *zap.SugaredLogger, mailer mail.Sender, images storage.ImageStore) (*application, error) {
	dialect := repositories.DialectFor(cfg.Database.Driver)

	// Repositories
	spaceRepo := &repositories.SpaceRepository{DB: db, Dialect: dialect}
	imageRepo := &repositories.SpaceImageRepository{DB: db, Dialect: dialect}
	rentalRepo := &repositories.RentalRepository{DB: db, Dialect: dialect}
	notificationRepo := &repositories.NotificationRepository{DB: db, Dialect: dialect}

	hub := ws.NewHub(logger, cfg.Server.AllowedOrigins)
	var publisher services.Publisher = hub
	var rdb *redis.Client
	var relay *ws.Relay
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb = redis.NewClient(opts)
		relay = ws.NewRelay(rdb, hub, cfg.Redis.Channel, logger)
		publisher = relay
	}

	// Services
	spaceService := &services.SpaceService{
		SpaceRepo: spaceRepo,
		ImageRepo: imageRepo,
		Images:    images,
		Logger:    logger,
	}
	rentalService := &services.RentalService{
		RentalRepo: rentalRepo,
		SpaceRepo:  spaceRepo,
		Mailer:     mailer,
		Logger:     logger,
	}
	notificationService := &services.NotificationService{
		NotificationRepo: notificationRepo,
		SpaceRepo:        spaceRepo,
		Mailer:           mailer,
		Publisher:        publisher,
		Logger:           logger,
		Concurrency:      cfg.Notifications.Concurrency,
	}

	// Without a signing key every request is anonymous.
	var tokens *utils.Manager
	if cfg.Auth.SigningKey != "" {
		tokens, _ = utils.NewManager(cfg.Auth.SigningKey)
	}

	return &application{
		cfg:    cfg,
		logger: logger,
		db:     db,
		hub:    hub,
		relay:  relay,
		redis:  rdb,
		tokens: tokens,

		spaceHandler:        &handlers.SpaceHandler{Service: spaceService, Logger: logger},
		rentalHandler:       &handlers.RentalHandler{Service: rentalService, Logger: logger},
		notificationHandler: &handlers.NotificationHandler{Service: notificationService, Logger: logger},
	}, nil
}

func openDB(driver, dsn string, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	db.SetMaxIdleConns(maxIdle)
	return db, nil
}

func newMailer(cfg config.Config, logger *zap.SugaredLogger) (mail.Sender, error) {
	switch cfg.Mail.Driver {
	case "ses":
		sess, err := cloud.NewSession(cfg.AWS)
		if err != nil {
			return nil, err
		}
		return mail.NewSESSender(sess, cfg.Mail.From), nil
	case "log":
		return &mail.LogSender{Logger: logger}, nil
	}
	return nil, fmt.Errorf("unknown mail driver %q", cfg.Mail.Driver)
}
