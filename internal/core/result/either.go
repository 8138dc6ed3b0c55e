package result

// Either holds exactly one of a Left or a Right value. Unlike Result,
// neither branch implies failure.
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// Left wraps l as the left branch.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

// Right wraps r as the right branch.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{right: r, isRight: true}
}

// IsLeft reports whether the left branch is active.
func (e Either[L, R]) IsLeft() bool {
	return !e.isRight
}

// IsRight reports whether the right branch is active.
func (e Either[L, R]) IsRight() bool {
	return e.isRight
}

// LeftValue returns the left value and true when the left branch is active.
func (e Either[L, R]) LeftValue() (L, bool) {
	if e.isRight {
		var zero L
		return zero, false
	}
	return e.left, true
}

// RightValue returns the right value and true when the right branch is active.
func (e Either[L, R]) RightValue() (R, bool) {
	if !e.isRight {
		var zero R
		return zero, false
	}
	return e.right, true
}

// Match calls onLeft or onRight depending on the active branch.
func Match[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}
