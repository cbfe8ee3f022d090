package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apicontext "github.com/reflora/server/internal/api/http/context"
	"github.com/reflora/server/internal/api/http/handler"
	"github.com/reflora/server/internal/api/http/middleware"
	"github.com/reflora/server/internal/api/http/router"
	httpServer "github.com/reflora/server/internal/api/http/server"
	"github.com/reflora/server/internal/config"
	"github.com/reflora/server/internal/keystore"
	"github.com/reflora/server/internal/logger"
	"github.com/reflora/server/internal/model"
	"github.com/reflora/server/internal/repository/postgres"
	"github.com/reflora/server/internal/server"
	"github.com/reflora/server/internal/service"
	storage "github.com/reflora/server/internal/storage/minio"
	"github.com/reflora/server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	keyStore, err := keystore.Open(ctx, cfg.KeyStore.Path)
	if err != nil {
		logger.Fatal("failed to open key store", "error", err)
	}
	defer keyStore.Close()

	userRepo := postgres.NewUserRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	tokenManager := token.NewJWT(cfg.Auth.JWTSecret)
	digester := service.NewEmailDigester(cfg.Auth.DigestSecret)

	userService := service.NewUser(userRepo, companyRepo, keyStore, digester, logger)
	authService := service.NewAuth(userService, tokenManager, logger)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}
	exportService := service.NewExport(userService, storageClient, logger)

	contextManager := apicontext.NewManager()

	apiHandler := router.New(
		handler.NewUser(userService, authService, logger),
		handler.NewCompany(companyRepo, logger),
		handler.NewExport(exportService, contextManager, logger),
		middleware.NewAuth(tokenManager, contextManager),
		middleware.NewLogging(logger),
	)
	apiServer := httpServer.New(fmt.Sprintf(":%s", cfg.HTTP.Port), apiHandler, logger)

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(apiServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
