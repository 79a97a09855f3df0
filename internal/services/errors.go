package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies cart domain failures
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindInvalidQuantity   ErrorKind = "INVALID_QUANTITY"
	KindInsufficientStock ErrorKind = "INSUFFICIENT_STOCK"
	KindEmptySelection    ErrorKind = "EMPTY_SELECTION"
)

// Sentinels for errors.Is; they match any CartError of the same kind.
var (
	ErrNotFound          = &CartError{Kind: KindNotFound, Message: "not found"}
	ErrInvalidQuantity   = &CartError{Kind: KindInvalidQuantity, Message: "invalid quantity"}
	ErrInsufficientStock = &CartError{Kind: KindInsufficientStock, Message: "insufficient stock"}
	ErrEmptySelection    = &CartError{Kind: KindEmptySelection, Message: "no items selected"}
)

// CartError is a recoverable failure of a cart operation. Message is safe to
// show to users; Op names the operation for logs.
type CartError struct {
	Kind    ErrorKind
	Op      string
	Message string
}

func (e *CartError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Is matches on kind so callers can use errors.Is(err, ErrNotFound)
func (e *CartError) Is(target error) bool {
	t, ok := target.(*CartError)
	return ok && t.Kind == e.Kind
}

func newCartError(kind ErrorKind, op, format string, args ...any) error {
	return &CartError{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// AsCartError extracts a CartError from err. It reports false for
// infrastructure errors, which callers must not hide from the transport.
func AsCartError(err error) (*CartError, bool) {
	var ce *CartError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
