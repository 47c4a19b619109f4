// cmd/promotion-service/main.go
package main

import (
	"strconv"

	"go.opentelemetry.io/otel"

	"lodge/internal/pkg/bootstrap"
	"lodge/internal/pkg/logger"
	"lodge/internal/service/promotion/application"
	"lodge/internal/service/promotion/infrastructure"
	"lodge/internal/service/promotion/infrastructure/rule"
	"lodge/internal/service/promotion/interfaces"
)

const serviceName = "promotion-service"

func main() {
	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        envInt("PORT", 8082),
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			tracer := otel.Tracer(serviceName)

			db, err := infrastructure.OpenMySQL(infrastructure.MySQLConfig{
				Host:     bootstrap.GetEnv("MYSQL_HOST", "localhost"),
				Port:     envInt("MYSQL_PORT", 3306),
				User:     bootstrap.GetEnv("MYSQL_USER", "lodge"),
				Password: bootstrap.GetEnv("MYSQL_PASSWORD", "lodge"),
				Database: bootstrap.GetEnv("MYSQL_DATABASE", "lodge_promotion"),
			})
			if err != nil {
				logger.L().Fatal().Err(err).Msg("failed to open promocode store")
			}

			engine, err := rule.NewCELRuleEngine()
			if err != nil {
				logger.L().Fatal().Err(err).Msg("failed to initialize rule engine")
			}

			service := application.NewPromotionService(
				infrastructure.NewGormPromocodeRepository(db), engine, tracer)
			interfaces.NewPromotionHandler(service).RegisterRoutes(appCtx.Mux)
		},
	})
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(bootstrap.GetEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}
