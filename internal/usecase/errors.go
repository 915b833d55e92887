package usecase

import "errors"

// Sentinel errors for the booking flow. Services wrap these with detail via
// fmt.Errorf("%w: ...") and handlers map them to HTTP statuses with errors.Is.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrSlotNotFound = errors.New("slot not found")

	ErrSlotUnavailable      = errors.New("slot is not open for booking")
	ErrInsufficientCapacity = errors.New("not enough seats remaining")
	ErrInvalidSeatID        = errors.New("invalid seat selection")
	ErrEmptySelection       = errors.New("no seats selected")
	ErrSeatAlreadyBooked    = errors.New("seat already booked")

	// ErrSeatConflict means the commit lost the race to a concurrent booking.
	// One automatic retry is attempted before it reaches the caller.
	ErrSeatConflict = errors.New("seats no longer available, please reselect")

	ErrBookingNotFound       = errors.New("booking not found")
	ErrBookingNotCancellable = errors.New("booking cannot be cancelled")

	ErrStorageUnavailable = errors.New("storage unavailable")
)
