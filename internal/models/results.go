package models

// ResultKind distinguishes a finished download from one that gave up.
type ResultKind int

// Result kinds.
const (
	ResultExhausted ResultKind = iota
	ResultSuccess
)

func (k ResultKind) String() string {
	if k == ResultSuccess {
		return "success"
	}
	return "exhausted"
}

// Result is the outcome of one orchestrator run: Success(path) or Exhausted.
//
// Exhausted carries no error detail; callers treat it as the failure signal.
type Result struct {
	kind     ResultKind
	path     string
	attempts int
}

// Success returns a successful result for path.
func Success(path string, attempts int) Result {
	return Result{kind: ResultSuccess, path: path, attempts: attempts}
}

// Exhausted returns the result for a resource that failed every attempt.
func Exhausted(attempts int) Result {
	return Result{kind: ResultExhausted, attempts: attempts}
}

// Kind returns the variant.
func (r Result) Kind() ResultKind { return r.kind }

// OK reports whether the result is Success.
func (r Result) OK() bool { return r.kind == ResultSuccess }

// Path returns the final file path, empty when exhausted.
func (r Result) Path() string { return r.path }

// Attempts returns how many attempts were made.
func (r Result) Attempts() int { return r.attempts }
