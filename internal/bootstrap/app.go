package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/jobs"
	"jobtrack-backend/internal/resumes"
	"jobtrack-backend/internal/shared/config"
	"jobtrack-backend/internal/shared/server"
	"jobtrack-backend/internal/shared/storage/db"
	"jobtrack-backend/internal/shared/storage/object"
	localstore "jobtrack-backend/internal/shared/storage/object/local"
	s3store "jobtrack-backend/internal/shared/storage/object/s3"
	"jobtrack-backend/internal/submissions"
	"jobtrack-backend/internal/uploads"
	"jobtrack-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Store              object.ObjectStore
	UsersRepo          users.Repo
	JobsRepo           jobs.Repo
	SubmissionsRepo    submissions.Repo
	ResumesRepo        resumes.Repo
	UsersService       *users.Service
	JobsService        *jobs.Service
	SubmissionsService *submissions.Service
	ResumesService     *resumes.Service
	UsersHandler       *users.Handler
	JobsHandler        *jobs.Handler
	SubmissionsHandler *submissions.Handler
	ResumesHandler     *resumes.Handler
	UploadsHandler     *uploads.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if sqlDB != nil {
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		app.JobsRepo = &jobs.PGRepo{DB: sqlDB}
		app.SubmissionsRepo = &submissions.PGRepo{DB: sqlDB}
		app.ResumesRepo = &resumes.PGRepo{DB: sqlDB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
		app.SubmissionsRepo = submissions.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
	}

	app.ResumesService = resumes.NewService(app.ResumesRepo)
	app.UsersService = users.NewService(app.UsersRepo, app.ResumesService)
	app.JobsService = jobs.NewService(app.JobsRepo)
	app.SubmissionsService = &submissions.Service{
		Repo:    app.SubmissionsRepo,
		Jobs:    app.JobsRepo,
		Users:   app.UsersRepo,
		Resumes: app.ResumesService,
		Store:   store,
	}

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.JobsHandler = jobs.NewHandler(app.JobsService)
	app.SubmissionsHandler = submissions.NewHandler(app.SubmissionsService)
	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.UploadsHandler = uploads.NewHandler(cfg)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		UsersHandler:       app.UsersHandler,
		JobsHandler:        app.JobsHandler,
		SubmissionsHandler: app.SubmissionsHandler,
		ResumesHandler:     app.ResumesHandler,
		UploadsHandler:     app.UploadsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseRequired
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
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			sqlDB.Close()
			return nil, nil
		}
		sqlDB.Close()
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, "")
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type bootstrapError string

func (e bootstrapError) Error() string { return string(e) }

const errDatabaseRequired = bootstrapError("DATABASE_URL is required")
