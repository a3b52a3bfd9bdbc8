package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/docchat/docchat-backend/internal/api"
	chatapi "github.com/docchat/docchat-backend/internal/api/chat"
	"github.com/docchat/docchat-backend/internal/config"
	"github.com/docchat/docchat-backend/internal/integration/googleai"
	"github.com/docchat/docchat-backend/internal/loader"
	"github.com/docchat/docchat-backend/internal/pkg/validator"
	"github.com/docchat/docchat-backend/internal/usecase/chat"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize external service connectors (with mock support)
	var embedder chat.Embedder
	var generator chat.Generator

	if cfg.EnableMocks {
		logger.Info("Using mock connector for Google AI")
		mock := googleai.NewMockConnector(logger)
		embedder = mock
		generator = mock
	} else {
		logger.Info("Using real connector for Google AI",
			zap.String("embed_model", cfg.GoogleAICfg.EmbedModel),
			zap.String("generate_model", cfg.GoogleAICfg.GenerateModel),
		)
		connector := googleai.NewConnector(cfg.GoogleAICfg, logger)
		embedder = connector
		generator = connector
	}

	// Initialize document loader
	pdfLoader := loader.NewPDFLoader(logger)

	// Initialize validators
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)
	logger.Info("Validators initialized")

	// Initialize use case
	chatUC := chat.NewUsecase(
		cfg.ChatCfg,
		cfg.SessionCfg,
		pdfLoader,
		embedder,
		generator,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	chatHandler := chatapi.NewHandler(chatUC, fileValidator, cfg.FileUploadCfg)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(chatHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		chatUC: chatUC,
		logger: logger,
	}, nil
}
