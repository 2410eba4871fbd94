package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/admin-panel-kit/attachment-service/cmd/middleware"
	"github.com/admin-panel-kit/attachment-service/internal/api"
	"github.com/admin-panel-kit/attachment-service/internal/api/handlers"
	"github.com/admin-panel-kit/attachment-service/internal/configuration"
	"github.com/admin-panel-kit/attachment-service/internal/records"
	"github.com/admin-panel-kit/attachment-service/internal/services"
	"github.com/admin-panel-kit/attachment-service/internal/storage"
)

func main() {
	cfg := configuration.Load()

	store := &records.PostgresStore{}
	if err := store.Connect(cfg.Database.ConnectionString()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	local, err := storage.NewLocalStore(cfg.Server.LocalUploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize local storage: %v", err)
	}

	// The remote backend is constructed whenever credentials are present,
	// not only in remote mode: removal of remote-shaped references must
	// still work after switching the mode back to local.
	var remote storage.BlobStore
	var binder storage.DomainBinder
	if cfg.Remote.Endpoint != "" {
		remoteStore, err := storage.NewRemoteStore(cfg.Remote)
		if err != nil {
			if cfg.StorageMode == configuration.ModeRemote {
				log.Fatalf("Failed to initialize remote storage: %v", err)
			}
			log.Printf("Warning: remote storage unavailable: %v", err)
		} else {
			remote = remoteStore
		}

		if cfg.Remote.CustomDomain != "" {
			b, err := storage.NewOSSDomainBinder(
				cfg.Remote.Endpoint,
				cfg.Remote.AccessKeyID,
				cfg.Remote.AccessKeySecret,
				cfg.Remote.Bucket,
				cfg.Remote.CustomDomain,
			)
			if err != nil {
				log.Printf("Warning: domain binding unavailable: %v", err)
			} else {
				binder = b
			}
		}
	}

	var events *services.EventPublisher
	if cfg.NATSURL != "" {
		events, err = services.ConnectEvents(cfg.NATSURL)
		if err != nil {
			log.Printf("Warning: NATS unavailable, events disabled: %v", err)
		} else {
			defer events.Close()
		}
	}

	resolver := services.NewURLResolver(cfg.Server.PublicHost, cfg.Server.StaticPrefix)
	svc := services.NewService(store, local, remote, binder, resolver, events, cfg.StorageMode)

	var authRequired gin.HandlerFunc
	if cfg.AuthIssuer != "" {
		if err := middleware.InitAuth(cfg.AuthIssuer); err != nil {
			log.Fatalf("Failed to initialize auth: %v", err)
		}
		authRequired = middleware.RequireAuth()
	} else {
		log.Println("Warning: AUTH_ISSUER not set, admin endpoints are unauthenticated")
	}

	setupGracefulShutdown()

	r := gin.Default()
	r.Static(cfg.Server.StaticPrefix, cfg.Server.LocalUploadDir)
	api.RegisterRoutes(r, handlers.NewFileHandler(svc), authRequired)

	log.Println("Server starting on :" + cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Shutting down gracefully...")
		os.Exit(0)
	}()
}
