// Package bootstrap wires configuration, storage and the prediction engines
// into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"agroadvisor-backend/internal/auth"
	"agroadvisor-backend/internal/crops"
	"agroadvisor-backend/internal/diseases"
	"agroadvisor-backend/internal/inference"
	"agroadvisor-backend/internal/inference/remote"
	"agroadvisor-backend/internal/insights"
	"agroadvisor-backend/internal/irrigation"
	"agroadvisor-backend/internal/pests"
	"agroadvisor-backend/internal/shared/config"
	"agroadvisor-backend/internal/shared/server"
	"agroadvisor-backend/internal/shared/storage/db"
	"agroadvisor-backend/internal/shared/storage/object"
	"agroadvisor-backend/internal/shared/storage/object/miniostore"
	"agroadvisor-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store

	TokenIssuer *auth.TokenIssuer

	UsersService      *users.Service
	CropsService      *crops.Service
	DiseasesService   *diseases.Service
	IrrigationService *irrigation.Service
	PestsService      *pests.Service

	// Availability tracks which model-backed engines came up. Engines with
	// an unreachable collaborator still serve, answering 503.
	Availability map[string]bool
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	issuer, err := buildTokenIssuer(cfg)
	if err != nil {
		return nil, err
	}

	store := buildStore(ctx, cfg)

	availability := map[string]bool{
		"crop":       true,
		"disease":    true,
		"pest":       true,
		"irrigation": true,
	}

	cropClassifier := buildCropClassifier(cfg, availability)
	imageClassifier := buildImageClassifier(cfg, availability)

	var (
		usersRepo      users.Repo
		cropsRepo      crops.Repo
		diseasesRepo   diseases.Repo
		irrigationRepo irrigation.Repo
	)
	if sqlDB != nil {
		usersRepo = &users.PGRepo{DB: sqlDB}
		cropsRepo = &crops.PGRepo{DB: sqlDB}
		diseasesRepo = &diseases.PGRepo{DB: sqlDB}
		irrigationRepo = &irrigation.PGRepo{DB: sqlDB}
	} else {
		usersRepo = users.NewMemoryRepo()
		cropsRepo = crops.NewMemoryRepo()
		diseasesRepo = diseases.NewMemoryRepo()
		irrigationRepo = irrigation.NewMemoryRepo()
	}

	app := &App{
		Config:       cfg,
		DB:           sqlDB,
		Store:        store,
		TokenIssuer:  issuer,
		Availability: availability,
	}

	app.UsersService = users.NewService(usersRepo)
	app.CropsService = crops.NewService(cropClassifier, cropsRepo)
	app.DiseasesService = diseases.NewService(imageClassifier, diseasesRepo, store)
	app.IrrigationService = irrigation.NewService(irrigationRepo)
	app.PestsService = pests.NewService(app.DiseasesService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		TokenVerifier:     issuer,
		UsersHandler:      users.NewHandler(app.UsersService, issuer),
		CropsHandler:      crops.NewHandler(app.CropsService),
		DiseasesHandler:   diseases.NewHandler(app.DiseasesService),
		IrrigationHandler: irrigation.NewHandler(app.IrrigationService),
		PestsHandler:      pests.NewHandler(app.PestsService),
		InsightsHandler:   insights.NewHandler(),
		Availability:      availability,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildTokenIssuer(cfg config.Config) (*auth.TokenIssuer, error) {
	secret := strings.TrimSpace(cfg.JWTSecret)
	if secret == "" {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		log.Printf("bootstrap: JWT_SECRET empty; using insecure dev secret")
		secret = "dev-only-secret"
	}
	return auth.NewTokenIssuer(secret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
}

// buildStore connects the leaf-image archive. It is optional: without an
// endpoint uploads are scored but not retained.
func buildStore(ctx context.Context, cfg config.Config) object.Store {
	if strings.TrimSpace(cfg.MinioEndpoint) == "" {
		return nil
	}
	store, err := miniostore.New(ctx, miniostore.Options{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.Printf("bootstrap: object store unavailable; uploads will not be archived: %v", err)
		return nil
	}
	return store
}

func buildCropClassifier(cfg config.Config, availability map[string]bool) inference.CropClassifier {
	client, err := remote.NewCropClient(cfg.CropModelURL, time.Duration(cfg.ModelTimeoutSec)*time.Second)
	if err != nil {
		log.Printf("bootstrap: crop model not configured: %v", err)
		availability["crop"] = false
		return inference.PlaceholderCrop{}
	}
	return client
}

func buildImageClassifier(cfg config.Config, availability map[string]bool) inference.ImageClassifier {
	client, err := remote.NewImageClient(cfg.DiseaseModelURL, time.Duration(cfg.ModelTimeoutSec)*time.Second)
	if err != nil {
		log.Printf("bootstrap: disease model not configured: %v", err)
		availability["disease"] = false
		availability["pest"] = false
		return inference.PlaceholderImage{}
	}
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "":
		return true
	default:
		return false
	}
}
