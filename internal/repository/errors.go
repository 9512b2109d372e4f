package repository

import "errors"

// Common repository errors. Missing rows are reported as (nil, nil) from
// lookups; these sentinels cover constraint violations and deletes.
var (
	// ErrDuplicateEmail is returned when a user create collides with an
	// existing email under a different id.
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrProjectNotFound is returned when a project delete targets an
	// unknown id.
	ErrProjectNotFound = errors.New("project not found")
)
