package fibonacci

import "github.com/agbru/fibseq/internal/progress"

// Type aliases for the shared progress types.
type (
	// ProgressUpdate is a type alias for progress.ProgressUpdate.
	ProgressUpdate = progress.ProgressUpdate

	// ProgressCallback is a type alias for progress.ProgressCallback.
	ProgressCallback = progress.ProgressCallback
)

// NewChannelCallback forwards progress to a channel without blocking the
// generation loop.
var NewChannelCallback = progress.ChannelCallback
