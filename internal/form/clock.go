package form

import "time"

// Timer is a pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The form only needs one-shot timers.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock runs callbacks on the runtime timer.
func RealClock() Clock { return realClock{} }
