package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"nta-reimbursement/internal/reimbursements"
	"nta-reimbursement/internal/shared/config"
	"nta-reimbursement/internal/shared/server"
	"nta-reimbursement/internal/shared/storage/db"
	"nta-reimbursement/internal/shared/storage/mongodb"
	"nta-reimbursement/internal/shared/storage/object"
	localstore "nta-reimbursement/internal/shared/storage/object/local"
	s3store "nta-reimbursement/internal/shared/storage/object/s3"
	"nta-reimbursement/internal/shared/telemetry"
	"nta-reimbursement/internal/status"
	"nta-reimbursement/internal/uploads"
)

// App holds shared dependencies and the router built on them.
type App struct {
	Config config.Config
	Router *gin.Engine

	DB          *sql.DB
	MongoClient *mongo.Client
	Store       object.ObjectStore

	RecordsRepo reimbursements.Repo
	StatusRepo  status.Repo

	ReimbursementService *reimbursements.Service
	UploadService        *uploads.Service
	StatusService        *status.Service
}

// Build connects the configured stores and wires services and routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.RecordStore) == "" {
		cfg.RecordStore = "memory"
	}
	ctx := context.Background()

	app := &App{Config: cfg}
	if err := app.buildRepos(ctx); err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Store = store

	app.ReimbursementService = reimbursements.NewService(app.RecordsRepo, reimbursements.StaticTemplate{})
	app.UploadService = uploads.NewService(app.Store)
	app.StatusService = status.NewService(app.StatusRepo)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:               cfg,
		ReimbursementHandler: reimbursements.NewHandler(app.ReimbursementService),
		UploadHandler:        uploads.NewHandler(app.UploadService),
		StatusHandler:        status.NewHandler(app.StatusService),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"record_store": cfg.RecordStore,
		"object_store": cfg.ObjectStoreType,
		"api_prefix":   cfg.APIPrefix,
	})
	return app, nil
}

func (a *App) buildRepos(ctx context.Context) error {
	switch a.Config.RecordStore {
	case "mongo":
		client, database, err := mongodb.Connect(ctx, a.Config.MongoURL, a.Config.MongoDatabase)
		if err != nil {
			return err
		}
		a.MongoClient = client
		records := reimbursements.NewMongoRepo(database)
		if err := records.EnsureIndexes(ctx); err != nil {
			_ = a.Close()
			return fmt.Errorf("ensure record indexes: %w", err)
		}
		a.RecordsRepo = records
		a.StatusRepo = status.NewMongoRepo(database)
	case "postgres":
		sqlDB, err := db.Connect(ctx, a.Config.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return err
		}
		a.DB = sqlDB
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = a.Close()
			return fmt.Errorf("run migrations: %w", err)
		}
		a.RecordsRepo = &reimbursements.PGRepo{DB: sqlDB}
		a.StatusRepo = &status.PGRepo{DB: sqlDB}
	case "memory":
		telemetry.Warn("bootstrap.memory_store", map[string]any{
			"hint": "records are lost on restart",
		})
		a.RecordsRepo = reimbursements.NewMemoryRepo()
		a.StatusRepo = status.NewMemoryRepo()
	default:
		return fmt.Errorf("unknown RECORD_STORE %q", a.Config.RecordStore)
	}
	return nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir)
	}
}

// Close releases store connections. It is safe to call more than once.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.MongoClient != nil {
		errs = append(errs, mongodb.Disconnect(a.MongoClient))
		a.MongoClient = nil
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
		a.DB = nil
	}
	return errors.Join(errs...)
}
