//go:build unix

package app

import (
	"os"

	"golang.org/x/sys/unix"
)

// shutdownSignals cancel a running generation.
var shutdownSignals = []os.Signal{unix.SIGINT, unix.SIGTERM}
