package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"slot-booking/internal/seatmap"
	"slot-booking/internal/usecase"
	"slot-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps usecase sentinels onto HTTP status codes.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrSlotNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrSeatConflict),
		errors.Is(err, usecase.ErrSeatAlreadyBooked):
		log.Warn(operation+" failed - seat conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSlotUnavailable),
		errors.Is(err, usecase.ErrInsufficientCapacity),
		errors.Is(err, usecase.ErrInvalidSeatID),
		errors.Is(err, usecase.ErrEmptySelection),
		errors.Is(err, usecase.ErrBookingNotCancellable),
		errors.Is(err, seatmap.ErrInvalidCapacity):
		log.Warn(operation+" rejected", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid user ID format"):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
