package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/jobmailer/internal/api"
	"github.com/ignite/jobmailer/internal/blob"
	"github.com/ignite/jobmailer/internal/config"
	"github.com/ignite/jobmailer/internal/kvstore"
	"github.com/ignite/jobmailer/internal/mailer"
	"github.com/ignite/jobmailer/internal/pkg/logger"
	"github.com/ignite/jobmailer/internal/service/attachments"
	"github.com/ignite/jobmailer/internal/service/maillog"
	"github.com/ignite/jobmailer/internal/service/recipients"
	"github.com/ignite/jobmailer/internal/service/templates"
	"github.com/ignite/jobmailer/internal/wizard"
)

// checkPortAvailable verifies that the target port is not already in
// use, so a stale process does not silently swallow requests.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use: %v", port, err)
	}
	ln.Close()
	return nil
}

func buildStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Storage.Type {
	case "memory":
		return kvstore.NewMemoryStore(), nil
	case "local":
		return kvstore.NewLocalStore(cfg.Storage.LocalPath)
	case "redis":
		return kvstore.NewRedisStoreFromURL(cfg.Storage.RedisURL, cfg.Storage.KeyPrefix)
	}
	return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
}

func buildBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	switch cfg.Storage.BlobBackend {
	case "inline":
		return blob.NewDataRefStore(), nil
	case "s3":
		return blob.NewS3Store(ctx, cfg.Storage.S3Bucket, cfg.Storage.S3Region, cfg.Storage.AWSProfile)
	}
	return nil, fmt.Errorf("unknown blob backend %q", cfg.Storage.BlobBackend)
}

func buildTransport(cfg *config.Config) (mailer.Transport, error) {
	switch cfg.Mailer.Provider {
	case "simulated":
		delay := time.Duration(cfg.Mailer.SimulatedDelayMS) * time.Millisecond
		return mailer.NewSimulatedTransport(delay), nil
	case "ses":
		return mailer.NewSESTransport(cfg.Mailer.AccessKey, cfg.Mailer.SecretKey, cfg.Mailer.Region)
	}
	return nil, fmt.Errorf("unknown mailer provider %q", cfg.Mailer.Provider)
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	if cfg.Log.RedactPII != nil {
		logger.SetRedactPII(*cfg.Log.RedactPII)
	}

	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		logger.Error("startup aborted", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, err := buildStore(cfg)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	blobs, err := buildBlobStore(ctx, cfg)
	if err != nil {
		logger.Error("blob storage init failed", "error", err)
		os.Exit(1)
	}
	transport, err := buildTransport(cfg)
	if err != nil {
		logger.Error("mailer init failed", "error", err)
		os.Exit(1)
	}

	tpl := templates.NewService(ctx, store)
	rcp := recipients.NewService(ctx, store)
	att := attachments.NewService(ctx, store, blobs)
	logs := maillog.NewService(ctx, store)

	wiz := wizard.NewController(tpl, rcp, att, logs, transport,
		cfg.Sender.SenderDetails(),
		wizard.SendOptions{
			Timeout:    cfg.Sending.Timeout(),
			MaxRetries: cfg.Sending.MaxRetries,
			Backoff:    cfg.Sending.Backoff(),
		},
	)

	handlers := api.NewHandlers(tpl, rcp, att, logs, wiz)
	router := api.SetupRoutes(handlers, cfg.Server.CORSOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // batch sends can take a while
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			"addr", addr,
			"storage", cfg.Storage.Type,
			"mailer", cfg.Mailer.Provider)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
