// Package progress defines the progress reporting types shared by the sequence
// generators and the presentation layers.
package progress

// ProgressUpdate is a single progress notification sent over a channel.
type ProgressUpdate struct {
	// GeneratorIndex identifies the generator that produced the update.
	GeneratorIndex int
	// Value is the completed fraction of the work, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of a generation, from 0.0
// to 1.0. Implementations must be fast; they are called from the generation loop.
type ProgressCallback func(value float64)

// Noop is a ProgressCallback that discards every update.
func Noop(float64) {}

// OrNoop returns cb, or Noop when cb is nil.
func OrNoop(cb ProgressCallback) ProgressCallback {
	if cb == nil {
		return Noop
	}
	return cb
}

// ChannelCallback returns a ProgressCallback that forwards updates to ch
// tagged with index. Sends never block: when the channel buffer is full the
// update is dropped, except for the final 1.0 which is always delivered.
func ChannelCallback(ch chan<- ProgressUpdate, index int) ProgressCallback {
	if ch == nil {
		return Noop
	}
	return func(value float64) {
		update := ProgressUpdate{GeneratorIndex: index, Value: value}
		if value >= 1.0 {
			ch <- update
			return
		}
		select {
		case ch <- update:
		default:
		}
	}
}
