// Файл: app/main.go

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/stepanovme/SupplyServiceApi/internal/controllers"
	"github.com/stepanovme/SupplyServiceApi/internal/repositories"
	"github.com/stepanovme/SupplyServiceApi/internal/routes"
	"github.com/stepanovme/SupplyServiceApi/internal/services"
	"github.com/stepanovme/SupplyServiceApi/pkg/config"
	"github.com/stepanovme/SupplyServiceApi/pkg/database/postgresql"
	apperrors "github.com/stepanovme/SupplyServiceApi/pkg/errors"
	"github.com/stepanovme/SupplyServiceApi/pkg/filestorage"
	applogger "github.com/stepanovme/SupplyServiceApi/pkg/logger"
	appmw "github.com/stepanovme/SupplyServiceApi/pkg/middleware"
	"github.com/stepanovme/SupplyServiceApi/pkg/utils"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))
	e.Validator = utils.NewValidator(validator.New())

	// Три отдельных базы: аутентификация, снабжение, справочники.
	authPool := postgresql.ConnectDB(cfg.Postgres.AuthDSN, "auth")
	defer authPool.Close()
	supplyPool := postgresql.ConnectDB(cfg.Postgres.SupplyDSN, "supply")
	defer supplyPool.Close()
	referencePool := postgresql.ConnectDB(cfg.Postgres.ReferenceDSN, "reference")
	defer referencePool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err))
	}
	defer redisClient.Close()

	storage, err := filestorage.NewLocalFileStorage(cfg.Upload.BaseDir)
	if err != nil {
		logger.Fatal("не удалось инициализировать файловое хранилище", zap.Error(err))
	}

	sugar := logger.Sugar()

	// Репозитории.
	referenceRepo := repositories.NewReferenceRepository(referencePool)
	requestRepo := repositories.NewRequestRepository(supplyPool)
	catalogRepo := repositories.NewCatalogRepository(supplyPool)
	projectRepo := repositories.NewProjectRepository(supplyPool)
	roleRepo := repositories.NewProjectUserRoleRepository(supplyPool)
	fileRepo := repositories.NewRequestFileRepository(supplyPool)
	authUserRepo := repositories.NewAuthUserRepository(authPool)
	sessionRepo := repositories.NewSessionRepository(authPool)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Сервисы.
	requestService := services.NewRequestService(requestRepo, authUserRepo, referenceRepo, sugar)
	itemService := services.NewRequestItemService(requestRepo)
	logService := services.NewRequestLogService(requestRepo)
	objectService := services.NewRequestObjectService(referenceRepo, roleRepo, projectRepo)
	projectService := services.NewProjectService(projectRepo)
	roleService := services.NewProjectUserRoleService(roleRepo, authUserRepo)
	catalogService := services.NewCatalogService(catalogRepo)
	fileService := services.NewRequestFileService(fileRepo, requestRepo, storage, sugar)
	reportService := services.NewReportService(requestService)

	sessionAuth := appmw.SessionAuth(sessionRepo, cacheRepo, cfg.Session.CacheTTL, logger)

	routes.InitRoutes(e, routes.Controllers{
		Request:         controllers.NewRequestController(requestService, reportService, logger),
		RequestItem:     controllers.NewRequestItemController(itemService, logger),
		RequestLog:      controllers.NewRequestLogController(logService, logger),
		RequestFile:     controllers.NewRequestFileController(fileService, logger),
		RequestObject:   controllers.NewRequestObjectController(objectService, logger),
		Project:         controllers.NewProjectController(projectService, logger),
		ProjectUserRole: controllers.NewProjectUserRoleController(roleService, logger),
		Catalog:         controllers.NewCatalogController(catalogService, logger),
	}, sessionAuth)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("сервер остановлен с ошибкой", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("ошибка остановки сервера", zap.Error(err))
	}
	logger.Info("сервер остановлен")
}
