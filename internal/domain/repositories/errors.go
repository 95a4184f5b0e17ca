package repositories

import "errors"

// ErrSignupNotFound indicates a status update targeted an id that does
// not exist in the store.
var ErrSignupNotFound = errors.New("signup not found")
