package models

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrOpenAlertExists = errors.New("an unresolved alert already exists for this hub")
)
