// Package result provides the Result and Either types used to carry
// success/failure and two-branch outcomes across layer boundaries.
package result

import "errors"

// Construction and access errors
var (
	// ErrSuccessWithError is returned when a successful result is built with an error
	ErrSuccessWithError = errors.New("invalid operation: a result cannot be successful and contain an error")

	// ErrFailureWithoutError is returned when a failing result is built without an error
	ErrFailureWithoutError = errors.New("invalid operation: a failing result needs to contain an error")

	// ErrValueOfFailure is the panic value when Value is called on a failure
	ErrValueOfFailure = errors.New("can't get the value of an error result, use Err instead")
)

// Unit is the value held by a result that carries no payload.
type Unit struct{}

// Outcome is implemented by every Result regardless of its value type.
// It lets results of different types be combined.
type Outcome interface {
	IsSuccess() bool
	IsFailure() bool
	Err() error
}

// Result is either a success holding a value of type T or a failure
// holding a non-nil error. The zero value is a success holding the
// zero value of T.
type Result[T any] struct {
	value T
	err   error
}

// Ensure Result implements Outcome
var _ Outcome = Result[Unit]{}

// New builds a result from its parts, rejecting inconsistent combinations.
func New[T any](success bool, err error, value T) (Result[T], error) {
	if success && err != nil {
		return Result[T]{}, ErrSuccessWithError
	}
	if !success && err == nil {
		return Result[T]{}, ErrFailureWithoutError
	}
	if !success {
		return Result[T]{err: err}, nil
	}
	return Result[T]{value: value}, nil
}

// Ok returns a successful result holding value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail returns a failing result holding err.
// A nil err is a programming error and panics.
func Fail[T any](err error) Result[T] {
	if err == nil {
		panic(ErrFailureWithoutError)
	}
	return Result[T]{err: err}
}

// IsSuccess reports whether the result holds a value.
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// IsFailure reports whether the result holds an error.
func (r Result[T]) IsFailure() bool {
	return r.err != nil
}

// Value returns the held value. Calling it on a failure is a contract
// violation and panics.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic(ErrValueOfFailure)
	}
	return r.value
}

// Err returns the held error, or nil for a success.
func (r Result[T]) Err() error {
	return r.err
}

// Get returns the value and error in the usual Go shape.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// Combine returns the first failure among results, scanning left to right,
// or a successful Unit result if none failed.
func Combine(results ...Outcome) Result[Unit] {
	for _, r := range results {
		if r != nil && r.IsFailure() {
			return Result[Unit]{err: r.Err()}
		}
	}
	return Ok(Unit{})
}

// Map applies fn to the value of a successful result. Failures pass
// through unchanged; an error from fn becomes a failure.
func Map[T, U any](r Result[T], fn func(T) (U, error)) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	u, err := fn(r.value)
	if err != nil {
		return Result[U]{err: err}
	}
	return Ok(u)
}
