package models

import "errors"

// Domain-specific errors for todo movement operations
var (
	// ErrAlreadyFirstTask indicates that the todo is already at the top of its category
	ErrAlreadyFirstTask = errors.New("task is already at the top of the category")

	// ErrAlreadyLastTask indicates that the todo is already at the bottom of its category
	ErrAlreadyLastTask = errors.New("task is already at the bottom of the category")

	// ErrNotFound is returned by repositories when a row does not exist
	ErrNotFound = errors.New("record not found")
)
