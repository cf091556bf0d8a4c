package protograph

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions. These can be used with
// errors.Is() for error checking.
var (
	// ErrMessageNotFound indicates the requested message full name was
	// not among the module's resolved descriptors.
	ErrMessageNotFound = errors.New("message not found")

	// ErrInvalidConfig indicates the provided options are invalid or
	// incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSchema indicates a dangling or malformed descriptor reference.
	// Every error produced by NewSchemaError matches it.
	ErrSchema = errors.New("schema error")
)

// Error kinds categorize errors by their type.
const (
	// KindResolution represents loader-side failures: the module could
	// not be resolved or contains nothing to show.
	KindResolution = "resolution"

	// KindSchema represents dangling or malformed descriptor references.
	KindSchema = "schema"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindRender represents presenter-side output failures.
	KindRender = "render"

	// KindInternal represents internal errors.
	KindInternal = "internal"
)

// Error is a structured error that wraps underlying errors with the
// operation that failed and the category of failure.
//
// Error supports unwrapping, so it is compatible with errors.Is() and
// errors.As().
type Error struct {
	// Op is the operation that failed (e.g., "Explore", "Resolver.Resolve").
	Op string

	// Kind categorizes the error (e.g., KindResolution, KindSchema).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional debugging information (optional).
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("protograph: %s: %s", e.Op, e.Kind)
	}
	if len(e.Context) > 0 {
		return fmt.Sprintf("protograph: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}
	return fmt.Sprintf("protograph: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind (and Op when the target sets one), and
// otherwise delegates to the underlying error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the provided context merged in.
func (e *Error) WithContext(ctx map[string]any) *Error {
	out := *e
	if out.Context == nil {
		out.Context = make(map[string]any, len(ctx))
	}
	for k, v := range ctx {
		out.Context[k] = v
	}
	return &out
}

// NewResolutionError creates an Error with KindResolution.
func NewResolutionError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindResolution, Err: err}
}

// NewSchemaError creates an Error with KindSchema. The result matches
// ErrSchema under errors.Is.
func NewSchemaError(op string, err error) *Error {
	if err == nil {
		return &Error{Op: op, Kind: KindSchema, Err: ErrSchema}
	}
	return &Error{Op: op, Kind: KindSchema, Err: fmt.Errorf("%w: %w", ErrSchema, err)}
}

// NewValidationError creates an Error with KindValidation.
func NewValidationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

// NewRenderError creates an Error with KindRender.
func NewRenderError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindRender, Err: err}
}
