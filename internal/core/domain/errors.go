package domain

import "errors"

// Ошибки, которые могут вернуть use case'ы.
var (
	ErrProfessionalNotFound = errors.New("professional not found")
)
