// internal/pkg/bootstrap/app.go
package bootstrap

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lodge/internal/pkg/logger"
	"lodge/internal/pkg/nacos"
	"lodge/internal/tracing"
)

type AppCtx struct {
	Mux   *http.ServeMux
	Nacos *nacos.Client
}

// AppInfo 包含了启动一个服务所需的所有特定信息。
type AppInfo struct {
	ServiceName      string
	Port             int
	RegisterHandlers func(appCtx AppCtx) // 每个服务在这里注册自己的 HTTP 路由
	OnShutdown       func(ctx context.Context)
}

// StartService 封装了所有服务的通用启动和优雅关停逻辑：
// 初始化日志与链路追踪、注册到 Nacos、启动 HTTP Server、
// 收到信号后按后进先出的顺序清理。
func StartService(info AppInfo) {
	logger.Init(info.ServiceName)

	nacosServerAddrs := GetEnv("NACOS_SERVER_ADDRS", "localhost:8848")
	nacosNamespace := GetEnv("NACOS_NAMESPACE", "")
	nacosGroup := GetEnv("NACOS_GROUP", "DEFAULT_GROUP")
	jaegerEndpoint := GetEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces")

	tp, err := tracing.InitTracerProvider(info.ServiceName, jaegerEndpoint)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to initialize tracer provider")
	}

	namingClient, err := nacos.NewClient(nacosServerAddrs, nacosNamespace, nacosGroup)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to initialize nacos client")
	}

	ip, err := outboundIP()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to get outbound IP address")
	}

	if err := namingClient.RegisterServiceInstance(info.ServiceName, ip, info.Port); err != nil {
		logger.L().Fatal().Err(err).Msg("failed to register service with nacos")
	}

	mux := http.NewServeMux()
	if info.RegisterHandlers != nil {
		info.RegisterHandlers(AppCtx{Mux: mux, Nacos: namingClient})
	}
	server := &http.Server{Addr: ":" + strconv.Itoa(info.Port), Handler: mux}
	go func() {
		logger.L().Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal().Err(err).Str("addr", server.Addr).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.L().Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := namingClient.DeregisterServiceInstance(info.ServiceName, ip, info.Port); err != nil {
		logger.L().Error().Err(err).Msg("error deregistering from nacos")
	}

	if info.OnShutdown != nil {
		info.OnShutdown(ctx)
	}

	// 先关 TracerProvider，确保缓冲中的 span 都发出去
	if err := tp.Shutdown(ctx); err != nil {
		logger.L().Error().Err(err).Msg("error shutting down tracer provider")
	}

	if err := server.Shutdown(ctx); err != nil {
		logger.L().Error().Err(err).Msg("error shutting down http server")
	}

	logger.L().Info().Msg("service gracefully shut down")
}

// GetEnv 从环境变量中读取配置，不存在则返回默认值
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// outboundIP 通过一次 UDP 拨号拿到本机对外的 IP，用于服务注册
func outboundIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}
