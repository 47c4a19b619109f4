package domain

import "errors"

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrIntervalConflict    = errors.New("interval conflicts with an existing reservation")
	ErrInvalidInterval     = errors.New("reservation start must be before end")
	ErrInvalidOccupants    = errors.New("occupant count must be positive")
	ErrTariffMissing       = errors.New("reservation must reference a tariff")
	ErrDraftNotFound       = errors.New("conversation draft not found")
)
