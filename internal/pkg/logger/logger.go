// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// base 是进程级的根 Logger，所有日志都从它派生
var base = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init 在服务启动时调用一次，为所有日志附加 service 字段
func Init(serviceName string) {
	zerolog.TimeFieldFormat = time.RFC3339
	base = base.With().Str("service", serviceName).Logger()
}

// L 返回根 Logger，用于没有请求上下文的场景（启动、关停）
func L() *zerolog.Logger {
	return &base
}

// Ctx 返回一个绑定了追踪上下文的 Logger。
// 如果 ctx 中存在有效的 Span，则自动附带 trace_id / span_id，
// 便于在日志系统中和 Jaeger 的链路互相跳转。
func Ctx(ctx context.Context) *zerolog.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return &base
	}
	l := base.With().
		Str("trace_id", spanCtx.TraceID().String()).
		Str("span_id", spanCtx.SpanID().String()).
		Logger()
	return &l
}
