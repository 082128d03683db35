package model

import "errors"

// Domain errors shared across services and repositories. Handlers map these
// to HTTP status codes in one place; anything not listed here is treated as
// an internal fault.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrClientNotFound  = errors.New("client not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")

	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already registered")
	ErrCPFTaken      = errors.New("cpf already registered")
	ErrBarcodeTaken  = errors.New("barcode already registered")

	ErrOutOfStock = errors.New("product out of stock")

	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrValidation = errors.New("validation failed")
)
