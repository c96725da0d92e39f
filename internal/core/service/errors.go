package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidBackup     = errors.New("invalid backup")
	ErrNoArchive         = errors.New("backup archive not configured")
	ErrInsufficientStock = errors.New("insufficient stock")
)
