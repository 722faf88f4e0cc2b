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

	"github.com/telemark/telemark-server/internal/api/http/handler"
	"github.com/telemark/telemark-server/internal/api/http/reqctx"
	"github.com/telemark/telemark-server/internal/api/http/router"
	httpserver "github.com/telemark/telemark-server/internal/api/http/server"
	"github.com/telemark/telemark-server/internal/config"
	"github.com/telemark/telemark-server/internal/llm/ollama"
	"github.com/telemark/telemark-server/internal/logger"
	"github.com/telemark/telemark-server/internal/model"
	"github.com/telemark/telemark-server/internal/repository/postgres"
	"github.com/telemark/telemark-server/internal/server"
	"github.com/telemark/telemark-server/internal/service"
	storage "github.com/telemark/telemark-server/internal/storage/minio"
	"github.com/telemark/telemark-server/internal/vector/milvus"
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
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	customerRepo := postgres.NewCustomerRepository(db)
	fileRepo := postgres.NewFileRepository(db)

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

	index, err := milvus.New(ctx, milvus.Config{
		Address:    cfg.Milvus.Address,
		Username:   cfg.Milvus.Username,
		Password:   cfg.Milvus.Password,
		Database:   cfg.Milvus.Database,
		Collection: cfg.Milvus.Collection,
	})
	if err != nil {
		logger.Fatal("failed to connect to vector index", "error", err)
	}
	defer index.Close(context.Background())

	llmClient := ollama.New(
		cfg.Ollama.BaseURL,
		cfg.Ollama.EmbedModel,
		cfg.Ollama.ChatModel,
		time.Duration(cfg.Ollama.TimeoutSeconds)*time.Second,
	)

	importService := service.NewImporter(customerRepo, logger)
	customerService := service.NewCustomer(customerRepo, logger)
	fileService := service.NewFile(fileRepo, storageClient, logger)
	selectionService := service.NewSelection(customerRepo, fileRepo)
	queryService := service.NewQuery(llmClient, index, llmClient, cfg.Milvus.TopK, logger)

	ctxMgr := reqctx.NewManager()

	customerHandler := handler.NewCustomer(importService, customerService, ctxMgr, logger)
	fileHandler := handler.NewFile(fileService, ctxMgr, logger)
	queryHandler := handler.NewQuery(selectionService, queryService, ctxMgr, logger)

	r := router.New(customerHandler, fileHandler, queryHandler, ctxMgr, logger)
	srv := httpserver.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

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
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
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
