package app

import (
	"go.uber.org/zap"

	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/repository"
	"blogapi/internal/service"
	"blogapi/internal/storage"
)

func App(cfg *config.Config, logger *zap.Logger) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		logger.Fatal("failed to initialize MinIO", zap.Error(err))
	}

	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient)

	return db, repo, services
}
