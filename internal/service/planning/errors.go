package planning

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках планировщика
	ErrInternal = errors.New("planning: internal error")
)
