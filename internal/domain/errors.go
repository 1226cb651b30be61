package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// Entry errors (въезд)
var (
	ErrEmptyLicensePlate  = errors.New("license plate is empty")
	ErrMissingVehicleType = errors.New("vehicle type is missing")
	ErrEmptySpotID        = errors.New("spot id is empty")
	ErrDuplicateEntry     = errors.New("vehicle with this plate is already parked")
	ErrSpotNotFound       = errors.New("spot not found")
	ErrSpotOccupied       = errors.New("spot is not available")
	ErrIncompatibleSpot   = errors.New("vehicle type is not allowed in this spot")
)

// Exit errors (выезд)
var (
	ErrNoActiveSession = errors.New("no active parking session for this plate")
	ErrNegativePayment = errors.New("payment amount cannot be negative")
)

// Lot errors
var (
	ErrRowSizeMismatch = errors.New("spot count does not match spot type list")
	ErrInvalidSpotID   = errors.New("spot id does not match F{n}-R{n}-S{n} format")
	ErrDuplicateSpotID = errors.New("duplicate spot id in lot")
	ErrInvalidFloor    = errors.New("invalid floor number")
	ErrInvalidRow      = errors.New("invalid row number")
)

// Fine errors
var (
	ErrFineNotFound    = errors.New("fine not found")
	ErrInvalidFineData = errors.New("invalid fine data")
	ErrUnknownPolicy   = errors.New("unknown fine policy")
)

// Authorization errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
)

// General errors
var (
	ErrInternal   = errors.New("internal server error")
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)
