package repository

import "github.com/pkg/errors"

// Sentinels returned by every store. Callers compare with errors.Is.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)
