package domain

import "errors"

var (
	ErrPromocodeNotFound = errors.New("promocode not found")
	ErrPromocodeExists   = errors.New("promocode already exists")
	ErrInvalidPromocode  = errors.New("invalid promocode definition")
)
