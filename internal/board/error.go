package board

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMinesPlaced     = errors.New("mines already placed")
	ErrBadRandom       = errors.New("random source returned an unusable set")
)

type ArgumentError struct {
	Name  string
	Value any
}

// [ArgumentError] implements [error]
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Name, e.Value)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
