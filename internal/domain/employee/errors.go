package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrFingerIDExists   = errors.New("finger id already registered")
)
