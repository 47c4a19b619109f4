// cmd/notification-service/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"lodge/internal/pkg/bootstrap"
	"lodge/internal/pkg/logger"
	"lodge/internal/pkg/mq"
	"lodge/internal/service/booking/domain"
	"lodge/internal/tracing"
)

const (
	serviceName           = "notification-service"
	reservationEventTopic = "reservation-events"
	consumerGroupID       = "notification-group"
)

var tracer = otel.Tracer(serviceName)

func main() {
	logger.Init(serviceName)

	jaegerEndpoint := bootstrap.GetEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	kafkaBrokers := bootstrap.GetEnv("KAFKA_BROKERS", "localhost:9092")

	tp, err := tracing.InitTracerProvider(serviceName, jaegerEndpoint)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("failed to initialize tracer provider")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.L().Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	reader := mq.NewKafkaReader(strings.Split(kafkaBrokers, ","), reservationEventTopic, consumerGroupID)
	defer reader.Close()

	logger.L().Info().Str("topic", reservationEventTopic).Msg("notification service consuming reservation events")

	for {
		msg, err := reader.ReadMessage(context.Background())
		if err != nil {
			logger.L().Error().Err(err).Msg("could not read message")
			continue
		}
		go processReservationEvent(msg)
	}
}

// processReservationEvent 把一条预订事件渲染成客户通知。
// 真实投递（Telegram、邮件）在这里只是日志沉淀，接入方替换这一段即可。
func processReservationEvent(msg kafka.Message) {
	ctx := mq.ExtractTraceContext(context.Background(), msg.Headers)

	spanOpts := []trace.SpanStartOption{
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", msg.Topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.message.offset", msg.Offset),
		),
		trace.WithSpanKind(trace.SpanKindConsumer),
	}
	ctx, span := tracer.Start(ctx, "notification.ProcessReservationEvent", spanOpts...)
	defer span.End()

	var event domain.ReservationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("failed to unmarshal reservation event")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	message := renderMessage(&event)
	if message == "" {
		logger.Ctx(ctx).Warn().Str("type", event.Type).Msg("unknown reservation event type, skipping")
		return
	}

	span.SetAttributes(
		attribute.String("reservation.id", event.ReservationID.String()),
		attribute.String("event.type", event.Type),
	)
	logger.Ctx(ctx).Info().
		Str("client", event.ClientID).
		Str("reservation_id", event.ReservationID.String()).
		Msg(message)
	span.AddEvent("Notification rendered")
}

func renderMessage(event *domain.ReservationEvent) string {
	const layout = "02.01.2006 15:04"
	switch event.Type {
	case domain.EventReservationCreated:
		return fmt.Sprintf(
			"Your reservation is confirmed: %s to %s, tariff %q. Total %.2f, prepayment %.2f.",
			event.StartsAt.Format(layout), event.EndsAt.Format(layout),
			event.TariffID, event.Total, event.Prepayment,
		)
	case domain.EventReservationCanceled:
		return fmt.Sprintf(
			"Your reservation for %s has been canceled.",
			event.StartsAt.Format(layout),
		)
	default:
		return ""
	}
}
