package router

import (
	"github.com/oksasatya/user-address-service/internal/application"
	"github.com/oksasatya/user-address-service/internal/container"
	pginfra "github.com/oksasatya/user-address-service/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/user-address-service/internal/interface/http"
	"github.com/oksasatya/user-address-service/internal/router/modules"
)

// InitModules builds all application modules from the container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	addrRepo := pginfra.NewAddressRepository(pool)

	registry := application.NewJobRegistry()
	exportSvc := application.NewExportService(
		userRepo,
		registry,
		logger,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetExportPublisher(),
		cfg.ExportJobDelay,
	)
	userSvc := application.NewUserService(
		userRepo,
		logger,
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetEmailPublisher(),
	)
	addrSvc := application.NewAddressService(addrRepo, logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, exportSvc, logger)))
	r.Add(modules.NewAddressModule(handlers.NewAddressHandler(addrSvc, logger)))
	r.Add(modules.NewJobModule(handlers.NewJobHandler(exportSvc, logger)))
}
