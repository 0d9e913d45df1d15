package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/campusday/orientation-api/internal/api"
	"github.com/campusday/orientation-api/internal/config"
	"github.com/campusday/orientation-api/internal/db"
	"github.com/campusday/orientation-api/internal/logger"
	"github.com/campusday/orientation-api/internal/pkg/blobstore"
	"github.com/campusday/orientation-api/internal/repository/dao"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate tables -> %w", err)
	}

	blobStore, err := openBlobStore(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store -> %w", err)
	}

	s := api.NewServer(conf, postgresDB, blobStore)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func openBlobStore(conf *config.AppConfig) (blobstore.Store, error) {
	if conf.B2.KeyID != "" {
		return blobstore.NewB2Store(context.Background(), conf.B2.KeyID, conf.B2.Key, conf.B2.Bucket)
	}

	zap.L().Warn("B2 credentials missing, storing uploads on local disk")

	return blobstore.NewDiskStore(conf.Uploads.Dir, conf.API.BaseURL+"/uploads")
}
