// SPDX-License-Identifier: ISC

package fault

import (
	"github.com/bitmark-inc/logger"
)

var log *logger.L

// Initialise sets up the package's logger channel, following the
// teacher's pattern of one channel per package acquired once at startup.
func Initialise() {
	if log == nil {
		log = logger.New("fault")
	}
}

// Finalise flushes the package's logger channel.
func Finalise() {
	if log != nil {
		log.Flush()
	}
}

// logInvariant records a violated internal invariant without panicking;
// callers still return the *Error to their own caller.
func logInvariant(format string, arguments ...interface{}) {
	if log == nil {
		return
	}
	log.Errorf(format, arguments...)
}
