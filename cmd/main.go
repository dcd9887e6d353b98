package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"sharedesk/internal/config"
	"sharedesk/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.DefaultPath
	}
	flag.StringVar(&configPath, "config", configPath, "path to the YAML config file")
	addr := flag.String("addr", "", "HTTP network address, overrides server.address")
	dev := flag.Bool("dev", false, "human readable development logs")
	flag.Parse()

	logger, err := newLogger(*dev)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		sugar.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}

	db, err := openDB(cfg.Database.Driver, cfg.Database.URL, cfg.Database.MaxIdleConns)
	if err != nil {
		sugar.Fatalf("open database: %v", err)
	}
	defer db.Close()
	sugar.Infof("connected to %s database", cfg.Database.Driver)

	images, err := storage.New(cfg)
	if err != nil {
		sugar.Fatalf("init image storage: %v", err)
	}
	mailer, err := newMailer(cfg, sugar)
	if err != nil {
		sugar.Fatalf("init mailer: %v", err)
	}

	app, err := initializeApp(cfg, db, sugar, mailer, images)
	if err != nil {
		sugar.Fatalf("init app: %v", err)
	}
	defer app.hub.Close()
	if app.redis != nil {
		defer app.redis.Close()
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		ErrorLog:     zap.NewStdLog(logger),
		Handler:      c.Handler(app.routes()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if app.relay != nil {
		go func() {
			if err := app.relay.Run(ctx); err != nil {
				sugar.Errorf("availability relay stopped: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infof("Starting server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorf("server failed: %v", err)
		}
		return
	case <-ctx.Done():
	}

	sugar.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorf("graceful shutdown: %v", err)
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
