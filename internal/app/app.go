package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/app/server"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/config"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/delivery/http"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service/auth"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service/class"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service/editor"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service/module"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/service/progress"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/storage/elastic"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/storage/minio_storage"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/storage/postgres"
	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	searchRepo := elastic.NewModuleSearchRepository(esClient, cfg.ES.Index)
	if err := searchRepo.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error preparing search index", err)
	}

	minioStorage, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	imageRepo, err := minio_storage.NewImageStorage(minioStorage, cfg.Minio.ImageBucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing image bucket", err)
	}

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	moduleRepo := postgres.NewModulePostgres(pg.Pool)
	sectionRepo := postgres.NewSectionPostgres(pg.Pool)
	questionRepo := postgres.NewQuestionPostgres(pg.Pool)
	classRepo := postgres.NewClassPostgres(pg.Pool)
	progressRepo := postgres.NewProgressPostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, "//", cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := auth.NewAuthService(log, jwtManager, userRepo, tokenRepo)
	moduleService := module.NewModuleService(log, moduleRepo, sectionRepo, questionRepo, classRepo, searchRepo, imageRepo, userRepo)
	editorService := editor.NewEditorService(log, moduleRepo, sectionRepo)
	classService := class.NewClassService(log, classRepo)
	progressService := progress.NewProgressService(log, moduleRepo, classRepo, progressRepo)

	u := service.Collection{
		AuthService:     authService,
		ModuleService:   moduleService,
		EditorService:   editorService,
		ClassService:    classService,
		ProgressService: progressService,
	}

	r := http.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err = srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
