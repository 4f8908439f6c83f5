// Package repository exposes typed access to the persisted collections.
package repository

import "errors"

var (
	ErrNotFound    = errors.New("record not found")
	ErrEmailExists = errors.New("email already registered")
	ErrSlotTaken   = errors.New("slot already booked")
)
