package capacity

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках калькулятора
	ErrInternal = errors.New("capacity: internal error")

	// ErrQueueFull возвращается, когда очередь отложенных пересчётов заполнена
	// Запись не теряется: пару (сотрудник, дата) подберёт сверочный проход
	ErrQueueFull = errors.New("capacity: recompute queue is full")
)
