package repository

import "errors"

// Common repository errors
var (
	// ErrPromotionNotFound is returned when a promotion is not found
	ErrPromotionNotFound = errors.New("promotion not found")

	// ErrNoteNotFound is returned when a note is not found
	ErrNoteNotFound = errors.New("note not found")

	// ErrInvoiceNotFound is returned when an invoice is not found
	ErrInvoiceNotFound = errors.New("invoice not found")
)
