package store

// Status is the phase of a view-backed fetch. A single tagged value
// replaces the loading/error boolean pairs the views used to juggle,
// so the flags cannot desync.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

// State holds one view's fetch outcome. Data is meaningful only when
// Status is StatusLoaded; Err only when StatusFailed.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

func Idle[T any]() State[T] {
	return State[T]{Status: StatusIdle}
}

func Loading[T any]() State[T] {
	return State[T]{Status: StatusLoading}
}

func Loaded[T any](data T) State[T] {
	return State[T]{Status: StatusLoaded, Data: data}
}

func Failed[T any](err error) State[T] {
	return State[T]{Status: StatusFailed, Err: err}
}
