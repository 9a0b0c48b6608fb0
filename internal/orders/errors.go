package orders

import "fmt"

// ValidationError reports missing or malformed input detected before any
// mutation takes place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NotFoundError reports a missing document.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return e.Resource + " not found"
}

// UnauthorizedError reports a caller acting on an order it is not a party to.
type UnauthorizedError struct {
	Reason string
}

func (e UnauthorizedError) Error() string {
	return e.Reason
}

// InvalidStateError reports an operation not allowed given the order's
// current status or payment status.
type InvalidStateError struct {
	Reason string
}

func (e InvalidStateError) Error() string {
	return e.Reason
}

// InsufficientStockError reports an order quantity exceeding the produce
// quantity still available.
type InsufficientStockError struct {
	Available float64
	Requested float64
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %.2f requested, %.2f available", e.Requested, e.Available)
}
