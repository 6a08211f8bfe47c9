package domain

import "errors"

var (
	ErrPoolEmpty         = errors.New("item pool is empty")
	ErrPoolNotFound      = errors.New("item pool not found")
	ErrInvalidTransition = errors.New("operation not allowed in current phase")
	ErrSelectorExhausted = errors.New("no unused items left in pool")
	ErrDuplicateItemID   = errors.New("duplicate item id")
	ErrInvalidItem       = errors.New("invalid item")
)
