package pet

import "errors"

var (
	ErrNotFound  = errors.New("pet not found")
	ErrForbidden = errors.New("pet belongs to another owner")
)
