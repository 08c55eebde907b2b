package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"mediavault"
	"mediavault/config"
	"mediavault/internal/application/usecase"
	"mediavault/internal/domain/repository/broker"
	infraBroker "mediavault/internal/infrastructure/broker"
	"mediavault/internal/infrastructure/catalog"
	"mediavault/internal/infrastructure/ffmpeg"
	"mediavault/internal/infrastructure/fingerprint"
	"mediavault/internal/infrastructure/session"
	"mediavault/internal/presentation/handler"
	"mediavault/internal/presentation/middleware"
	"mediavault/pkg/logger"
)

func HandleRun(args []string) {
	if len(args) < 3 {
		ExitOnError(errors.New("at least 1 arguments expected\nuse help command for more information"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	logger.Info("running mediavault", "version", mediavault.StringVersion())

	var publisher broker.Publisher
	if cfg.BrokerConfig.URI != "" {
		brokerClient, err := infraBroker.NewClient(cfg.BrokerConfig)
		if err != nil {
			ExitOnError(err)
		}

		publisher = infraBroker.NewPublisher(brokerClient, cfg.PublisherConfig)
	} else {
		logger.Warn("broker is disabled", "reason", "BROKER_URI is not set")
	}

	cat, err := catalog.New(cfg.Default.UploadDir, cfg.Catalog)
	if err != nil {
		ExitOnError(err)
	}

	sessions := session.New(cfg.Default.UploadDir, cfg.Sessions)
	transcoder := ffmpeg.New(cfg.Transcoder)
	hasher := fingerprint.New(cfg.Fingerprint)
	admins := usecase.NewAdminRoster(cfg.Admins)

	uploader := usecase.NewUploader(cat, sessions, transcoder, hasher, publisher,
		cfg.Default.UploadDir, cfg.Default.MaxFileSizeMB)
	getter := usecase.NewGetter(cat)
	lister := usecase.NewLister(cat)
	deleter := usecase.NewDeleter(cat, admins)
	flagUpdater := usecase.NewFlagUpdater(cat, admins)
	resolver := usecase.NewResolver(cat, transcoder)
	commenter := usecase.NewCommenter(cat, cat, admins)

	uploadHandler := handler.NewUploadHandler(uploader)
	chunkHandler := handler.NewChunkHandler(uploader)
	getHandler := handler.NewGetHandler(getter, lister)
	deleteHandler := handler.NewDeleteHandler(deleter)
	flagsHandler := handler.NewFlagsHandler(flagUpdater)
	fileHandler := handler.NewFileHandler(resolver)
	commentHandler := handler.NewCommentHandler(commenter)

	e := echo.New()
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost,
			http.MethodDelete, http.MethodHead, http.MethodOptions},
		MaxAge: 86400,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.BodyLimit(fmt.Sprintf("%dM", cfg.Default.MaxFileSizeMB)))
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(20)))

	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	authed := middleware.PrincipalMiddleware()

	e.POST("/media", uploadHandler.HandleUpload, authed)
	e.POST("/media/uploads", chunkHandler.HandleInit, authed)
	e.PUT("/media/uploads/:upload_id/:index", chunkHandler.HandlePutChunk, authed)
	e.POST("/media/uploads/:upload_id", chunkHandler.HandleComplete, authed)

	e.GET("/media", getHandler.HandleList)
	e.GET("/media/:id", getHandler.HandleGet)
	e.GET("/media/:id/file", fileHandler.HandleFile)
	e.DELETE("/media/:id", deleteHandler.HandleDelete, authed)
	e.PATCH("/media/:id/flags", flagsHandler.HandleUpdateFlags, authed)

	e.POST("/media/:id/comments", commentHandler.HandleAdd, authed)
	e.GET("/media/:id/comments", commentHandler.HandleList)
	e.DELETE("/media/:id/comments/:comment_id", commentHandler.HandleDelete, authed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.Default.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(fmt.Errorf("shutting down server: %w", err))
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		ExitOnError(err)
	}
}
