package main

import (
	"phonefmt/internal/formatter/handler"
	"phonefmt/internal/formatter/service"
	"phonefmt/internal/formatter/validator"
	"phonefmt/pkg/app"
	"phonefmt/pkg/config"
	"phonefmt/pkg/phoneformat"
)

const ServiceName = "formatter-api"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Formatter API service")
	formatterService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewFormatterHandler(formatterService, cfg.Log), formatterService.Ready)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.FormatterService {
	formatValidator := validator.NewFormatValidator(cfg.Log)
	formatterService := service.NewFormatterService(
		phoneformat.DefaultPlan(),
		formatValidator,
		cfg,
	)

	cfg.Log.Info("Formatter service initialized", "home_region", cfg.HomeRegion)
	return formatterService
}
