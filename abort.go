package chillvec

import (
	"context"
	"os"
)

// AbortExitCode is the status the process exits with on an unrecoverable
// condition (128 + SIGABRT).
const AbortExitCode = 134

// exitFunc terminates the process. Tests replace it to observe aborts.
var exitFunc = os.Exit

// abort terminates the process. It never returns in production.
func abort(o *options, err *AbortError) {
	o.metrics.RecordAbort(err)
	o.logger.LogAbort(context.Background(), err)
	exitFunc(AbortExitCode)
}
