package domain

import "errors"

var (
	ErrShipmentNotFound  = errors.New("shipment not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrNotPending        = errors.New("shipment is not pending")
	ErrSigningInProgress = errors.New("another shipment is being signed")
	ErrNoSigningSession  = errors.New("no shipment is being signed")
)

// ValidationError is a rejected user input. The store is never touched when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrNoItems            = &ValidationError{Field: "items", Message: "Please add at least one item"}
	ErrNoDriver           = &ValidationError{Field: "driverName", Message: "Please select a driver"}
	ErrNoProject          = &ValidationError{Field: "project", Message: "Please select a project"}
	ErrNoTransportCompany = &ValidationError{Field: "transportCompany", Message: "Please select a transport company"}
	ErrNoAddress          = &ValidationError{Field: "address", Message: "Please enter a delivery address"}
	ErrNoSignerName       = &ValidationError{Field: "signatureName", Message: "Please enter the signer's name"}
	ErrNoSignature        = &ValidationError{Field: "signature", Message: "Please sign before saving"}
	ErrEmptySelection     = &ValidationError{Field: "selection", Message: "Please select at least one shipment"}
)

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
