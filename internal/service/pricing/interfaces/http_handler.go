package interfaces

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"lodge/internal/service/pricing/application"
	"lodge/internal/service/pricing/domain"
)

// PricingHandler 封装了定价用例的 HTTP 处理器。
// 定价没有独立进程，这些路由挂在 booking 服务的 ServeMux 上。
type PricingHandler struct {
	service *application.PricingService
}

// NewPricingHandler 创建一个新的 HTTP 处理器实例
func NewPricingHandler(service *application.PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *PricingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/calculate_price", h.handleCalculatePrice)
	mux.HandleFunc("/calculate_prepayment", h.handleCalculatePrepayment)
	mux.HandleFunc("/tariff_availability", h.handleTariffAvailability)
	mux.HandleFunc("/tariffs", h.handleTariffs)
}

func (h *PricingHandler) handleCalculatePrice(w http.ResponseWriter, r *http.Request) {
	propagator := otel.GetTextMapPropagator()
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req application.CalculatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		http.Error(w, "date must be RFC 3339", http.StatusBadRequest)
		return
	}

	addOns := domain.AddOns{
		Sauna:         req.Sauna,
		SecretRoom:    req.SecretRoom,
		SecondBedroom: req.SecondBedroom,
		Photoshoot:    req.Photoshoot,
	}
	breakdown, err := h.service.CalculatePrice(ctx, req.TariffID, addOns, req.Occupants, req.DurationHours, date)
	if err != nil {
		writePricingError(w, err)
		return
	}

	resp := application.CalculatePriceResponse{
		TariffID:         breakdown.TariffID,
		Base:             breakdown.Base,
		AddOns:           breakdown.AddOnTotals,
		ExtraOccupantFee: breakdown.ExtraOccupantFee,
		ExtraHoursFee:    breakdown.ExtraHoursFee,
		Total:            breakdown.Total,
		OverrideRule:     breakdown.OverrideRule,
		Categories:       breakdown.Categories(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *PricingHandler) handleCalculatePrepayment(w http.ResponseWriter, r *http.Request) {
	propagator := otel.GetTextMapPropagator()
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req struct {
		TotalPrice float64 `json:"total_price"`
		Date       string  `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		http.Error(w, "date must be RFC 3339", http.StatusBadRequest)
		return
	}

	resp := h.service.CalculatePrepayment(ctx, req.TotalPrice, date)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *PricingHandler) handleTariffAvailability(w http.ResponseWriter, r *http.Request) {
	propagator := otel.GetTextMapPropagator()
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	var req struct {
		TariffID string `json:"tariff_id"`
		StartsAt string `json:"starts_at"`
		EndsAt   string `json:"ends_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		http.Error(w, "starts_at must be RFC 3339", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		http.Error(w, "ends_at must be RFC 3339", http.StatusBadRequest)
		return
	}

	resp, err := h.service.TariffAvailability(ctx, req.TariffID, start, end)
	if err != nil {
		writePricingError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *PricingHandler) handleTariffs(w http.ResponseWriter, r *http.Request) {
	propagator := otel.GetTextMapPropagator()
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.service.Tariffs(ctx))
}

func writePricingError(w http.ResponseWriter, err error) {
	var statusCode int
	switch {
	case errors.Is(err, domain.ErrTariffNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDuration), errors.Is(err, domain.ErrInvalidOccupancy):
		statusCode = http.StatusBadRequest
	default:
		statusCode = http.StatusInternalServerError
	}
	http.Error(w, err.Error(), statusCode)
}
