package adaptor

import (
	"encoding/json"
	"net/http"

	"slot-booking/internal/dto/request"
	"slot-booking/internal/usecase"
	"slot-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SlotHandler struct {
	service usecase.SlotService
	log     *zap.Logger
}

func NewSlotHandler(service usecase.SlotService, log *zap.Logger) *SlotHandler {
	return &SlotHandler{
		service: service,
		log:     log.With(zap.String("handler", "slot")),
	}
}

// GetSlots handles GET /api/slots (public)
func (h *SlotHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.SlotFilterRequest{
		Venue:     query.Get("venue"),
		Title:     query.Get("title"),
		StartDate: utils.ParseTime(query.Get("start_date")),
		EndDate:   utils.ParseTime(query.Get("end_date")),
		MinPrice:  utils.ParseFloat(query.Get("min_price")),
		MaxPrice:  utils.ParseFloat(query.Get("max_price")),
	}

	slots, err := h.service.GetSlots(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetSlotByCode handles GET /api/slots/{code} (public)
func (h *SlotHandler) GetSlotByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		utils.ResponseBadRequest(w, "Slot code is required", nil)
		return
	}

	slot, err := h.service.GetSlotByCode(r.Context(), code)
	if err != nil {
		handleServiceError(h.log, w, err, "get slot by code")
		return
	}

	utils.ResponseSuccess(w, "success", slot)
}

// GetSeatMap handles GET /api/slots/{code}/seats (public)
func (h *SlotHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		utils.ResponseBadRequest(w, "Slot code is required", nil)
		return
	}

	seatMap, err := h.service.GetSeatMap(r.Context(), code)
	if err != nil {
		handleServiceError(h.log, w, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "success", seatMap)
}

// ==================== ADMIN METHODS ====================

// CreateSlot handles POST /api/admin/slots (admin only)
func (h *SlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	slot, err := h.service.CreateSlot(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create slot")
		return
	}

	utils.ResponseCreated(w, "success", slot)
}
