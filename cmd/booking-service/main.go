// cmd/booking-service/main.go
package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"lodge/internal/pkg/bootstrap"
	"lodge/internal/pkg/httpclient"
	"lodge/internal/pkg/logger"
	"lodge/internal/pkg/mq"
	"lodge/internal/pkg/redis"
	bookingapp "lodge/internal/service/booking/application"
	bookinginfra "lodge/internal/service/booking/infrastructure"
	"lodge/internal/service/booking/infrastructure/adapter"
	"lodge/internal/service/booking/interfaces"
	pricingapp "lodge/internal/service/pricing/application"
	pricinginfra "lodge/internal/service/pricing/infrastructure"
	pricinginterfaces "lodge/internal/service/pricing/interfaces"
	"lodge/internal/zookeeper"
)

const (
	serviceName           = "booking-service"
	reservationEventTopic = "reservation-events"
)

// main 是预订服务的组装根：创建并组装所有依赖项，然后启动应用
func main() {
	var closers []func() error

	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Port:        envInt("PORT", 8081),
		RegisterHandlers: func(appCtx bootstrap.AppCtx) {
			tracer := otel.Tracer(serviceName)

			rateCfg, err := pricinginfra.LoadRateConfig(bootstrap.GetEnv("RATES_CONFIG", "configs/rates.yaml"))
			if err != nil {
				logger.L().Fatal().Err(err).Msg("failed to load rate config")
			}
			pricingService := pricingapp.NewPricingService(rateCfg, tracer)

			db, err := bookinginfra.OpenMySQL(bookinginfra.MySQLConfig{
				Host:     bootstrap.GetEnv("MYSQL_HOST", "localhost"),
				Port:     envInt("MYSQL_PORT", 3306),
				User:     bootstrap.GetEnv("MYSQL_USER", "lodge"),
				Password: bootstrap.GetEnv("MYSQL_PASSWORD", "lodge"),
				Database: bootstrap.GetEnv("MYSQL_DATABASE", "lodge_booking"),
			})
			if err != nil {
				logger.L().Fatal().Err(err).Msg("failed to open reservation store")
			}
			repo := bookinginfra.NewGormReservationRepository(db, rateCfg.BufferHours)

			redisClient, err := redis.NewClient(bootstrap.GetEnv("REDIS_ADDRS", "localhost:6379"))
			if err != nil {
				logger.L().Fatal().Err(err).Msg("failed to initialize redis client")
			}
			drafts := adapter.NewDraftRedisAdapter(redisClient)
			closers = append(closers, redisClient.Close)

			kafkaWriter := mq.NewKafkaWriter(
				strings.Split(bootstrap.GetEnv("KAFKA_BROKERS", "localhost:9092"), ","),
				reservationEventTopic,
			)
			publisher := adapter.NewEventKafkaAdapter(kafkaWriter)
			closers = append(closers, publisher.Close)

			zkConn, err := zookeeper.Connect(bootstrap.GetEnv("ZK_SERVERS", "localhost:2181"), 5*time.Second)
			if err != nil {
				logger.L().Fatal().Err(err).Msg("failed to connect to zookeeper")
			}
			locker := adapter.NewZkLockerAdapter(zkConn)

			httpClient := httpclient.NewClient(tracer)
			promotion := adapter.NewPromotionHTTPAdapter(httpClient,
				bootstrap.GetEnv("PROMOTION_SERVICE_URL", "http://localhost:8082"))
			calendar := adapter.NewCalendarHTTPAdapter(httpClient,
				bootstrap.GetEnv("CALENDAR_SERVICE_URL", "http://localhost:8090"))

			bookingService := bookingapp.NewBookingService(
				repo, pricingService, promotion, locker, publisher, drafts, calendar,
				rateCfg.BufferHours, tracer,
			)
			interfaces.NewBookingHandler(bookingService).RegisterRoutes(appCtx.Mux)
			pricinginterfaces.NewPricingHandler(pricingService).RegisterRoutes(appCtx.Mux)
		},
		OnShutdown: func(ctx context.Context) {
			for _, closer := range closers {
				if err := closer(); err != nil {
					logger.L().Error().Err(err).Msg("error closing resource")
				}
			}
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
