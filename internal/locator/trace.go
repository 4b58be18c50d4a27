package locator

import (
	"github.com/jonesrussell/golocator/internal/logger"
)

// Tracer receives every candidate attempt during strategy search and
// simplification. A nil tracer on the Generator disables tracing with no
// overhead beyond a nil check.
type Tracer interface {
	// Candidate reports one validated attempt.
	Candidate(strategy Strategy, expression string, accepted bool)
}

// loggerTracer writes candidate attempts to a logger at debug level.
type loggerTracer struct {
	log logger.Interface
}

// NewLoggerTracer creates a Tracer backed by a logger.
func NewLoggerTracer(log logger.Interface) Tracer {
	return &loggerTracer{log: log}
}

// Candidate logs one attempt.
func (t *loggerTracer) Candidate(strategy Strategy, expression string, accepted bool) {
	t.log.Debug("candidate attempted",
		"strategy", string(strategy),
		"expression", expression,
		"accepted", accepted,
	)
}
