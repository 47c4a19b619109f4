package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"lodge/internal/service/booking/application"
	"lodge/internal/service/booking/domain"
	pricingdomain "lodge/internal/service/pricing/domain"
)

// BookingHandler 封装了 booking 服务的 HTTP 处理器
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler 创建一个新的 HTTP 处理器实例
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *BookingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/check_availability", h.handleCheckAvailability)
	mux.HandleFunc("/free_slots", h.handleFreeSlots)
	mux.HandleFunc("/quote", h.handleQuote)
	mux.HandleFunc("/validate_promocode", h.handleValidatePromocode)
	mux.HandleFunc("/create_reservation", h.handleCreateReservation)
	mux.HandleFunc("/cancel_reservation", h.handleCancelReservation)
}

func (h *BookingHandler) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := extract(r)

	var req application.CheckAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CheckAvailability(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *BookingHandler) handleFreeSlots(w http.ResponseWriter, r *http.Request) {
	ctx := extract(r)

	day, err := time.Parse("2006-01-02", r.URL.Query().Get("day"))
	if err != nil {
		http.Error(w, "day must be formatted as YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	excludeID := uuid.Nil
	if raw := r.URL.Query().Get("exclude_id"); raw != "" {
		if excludeID, err = uuid.Parse(raw); err != nil {
			http.Error(w, "exclude_id must be a UUID", http.StatusBadRequest)
			return
		}
	}

	resp, err := h.service.FreeSlotsForDay(ctx, day, excludeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *BookingHandler) handleQuote(w http.ResponseWriter, r *http.Request) {
	ctx := extract(r)

	var req application.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Quote(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *BookingHandler) handleValidatePromocode(w http.ResponseWriter, r *http.Request) {
	ctx := extract(r)

	var req struct {
		Code            string `json:"code"`
		ReservationDate string `json:"reservation_date"`
		TariffID        string `json:"tariff_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	date, err := time.Parse(time.RFC3339, req.ReservationDate)
	if err != nil {
		http.Error(w, "reservation_date must be RFC 3339", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ValidatePromocode(ctx, req.Code, date, req.TariffID)
	if err != nil {
		// 促销服务不可达对调用方是 502，而不是校验失败
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, resp)
}

func (h *BookingHandler) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx := extract(r)

	var req application.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateReservation(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (h *BookingHandler) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx := extract(r)

	var req application.CancelReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.CancelReservation(ctx, req.ReservationID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"success": true})
}

// extract 从请求头恢复追踪上下文
func extract(r *http.Request) context.Context {
	propagator := otel.GetTextMapPropagator()
	return propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
}

// writeError 根据错误类型返回不同的 HTTP 状态码
func writeError(w http.ResponseWriter, err error) {
	var statusCode int
	switch {
	case errors.Is(err, domain.ErrReservationNotFound),
		errors.Is(err, pricingdomain.ErrTariffNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, domain.ErrIntervalConflict):
		statusCode = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInterval),
		errors.Is(err, domain.ErrInvalidOccupants),
		errors.Is(err, domain.ErrTariffMissing),
		errors.Is(err, pricingdomain.ErrInvalidDuration),
		errors.Is(err, pricingdomain.ErrInvalidOccupancy):
		statusCode = http.StatusBadRequest
	default:
		statusCode = http.StatusInternalServerError
	}
	http.Error(w, err.Error(), statusCode)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
