package report

import "fmt"

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// Reporter is the error sink for one compilation session.  The semantic passes
// push enumerated errors into it in traversal order; the driver prints them
// once after type checking and inspects the count to decide whether code
// generation should run.  Errors are deduplicated by (kind, span start).
type Reporter struct {
	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels above.
	logLevel int

	// The collected errors, in insertion order.
	errors []*SemanticError

	// seen tracks (kind, position) pairs already recorded.
	seen map[dedupeKey]struct{}
}

type dedupeKey struct {
	kind      int
	line, col int
}

// NewReporter creates a new reporter with the given log level.
func NewReporter(logLevel int) *Reporter {
	return &Reporter{
		logLevel: logLevel,
		seen:     make(map[dedupeKey]struct{}),
	}
}

// Report records a semantic error of the given kind at the given span.  The
// args are interpolated into the kind's message template.  A second error of
// the same kind at the same position is dropped.
func (r *Reporter) Report(kind int, span *TextSpan, args ...interface{}) {
	key := dedupeKey{kind: kind}
	if span != nil {
		key.line = span.StartLine
		key.col = span.StartCol
	}

	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}

	r.errors = append(r.errors, &SemanticError{
		Kind:    kind,
		Span:    span,
		Message: fmt.Sprintf(errorTemplates[kind], args...),
	})
}

// Errors returns the collected errors in insertion order.
func (r *Reporter) Errors() []*SemanticError {
	return r.errors
}

// Count returns the number of collected errors.
func (r *Reporter) Count() int {
	return len(r.errors)
}

// AnyErrors returns whether or not any errors were detected.
func (r *Reporter) AnyErrors() bool {
	return len(r.errors) > 0
}

// Print displays all collected errors.  It does nothing when the log level is
// silent, so the passes can be exercised quietly from tests.
func (r *Reporter) Print(srcPath string) {
	if r.logLevel == LogLevelSilent {
		return
	}

	for _, err := range r.errors {
		displaySemanticError(srcPath, err)
	}
}
