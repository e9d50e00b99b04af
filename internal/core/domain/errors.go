package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is the class shared by every lookup failure. Match it with
// errors.Is when the kind of missing entity does not matter.
var ErrNotFound = errors.New("not found")

var (
	ErrJobNotFound  = fmt.Errorf("job %w", ErrNotFound)
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrUserExists   = errors.New("user already exists")
)
