package protograph

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that all sentinel errors are defined correctly.
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "ErrMessageNotFound",
			err:  ErrMessageNotFound,
			want: "message not found",
		},
		{
			name: "ErrInvalidConfig",
			err:  ErrInvalidConfig,
			want: "invalid configuration",
		},
		{
			name: "ErrSchema",
			err:  ErrSchema,
			want: "schema error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatalf("sentinel error %s is nil", tt.name)
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("error message = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestErrorFormatting verifies the Error() method formatting.
func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "no underlying error",
			err:  &Error{Op: "Explore", Kind: KindInternal},
			want: "protograph: Explore: internal",
		},
		{
			name: "with underlying error",
			err:  &Error{Op: "Explore", Kind: KindResolution, Err: errors.New("boom")},
			want: "protograph: Explore (resolution): boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSchemaErrorMatchesSentinel(t *testing.T) {
	err := NewSchemaError("Explore", errors.New("dangling reference"))
	if !errors.Is(err, ErrSchema) {
		t.Errorf("errors.Is(%v, ErrSchema) = false, want true", err)
	}

	if err := NewSchemaError("Explore", nil); !errors.Is(err, ErrSchema) {
		t.Errorf("errors.Is(%v, ErrSchema) = false, want true", err)
	}
}

func TestErrorContextFormatting(t *testing.T) {
	err := NewSchemaError("Explore", errors.New("dangling")).
		WithContext(map[string]any{"message": "shop.v1.Order"})
	got := err.Error()
	if !strings.Contains(got, "shop.v1.Order") {
		t.Errorf("Error() = %q, want context included", got)
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewResolutionError("Explore", fmt.Errorf("outer: %w", inner))
	if !errors.Is(err, inner) {
		t.Error("errors.Is should reach the wrapped error")
	}
}

func TestErrorIsByKind(t *testing.T) {
	err := NewValidationError("Explore", ErrInvalidConfig)

	if !errors.Is(err, &Error{Kind: KindValidation}) {
		t.Error("should match on Kind alone")
	}
	if !errors.Is(err, &Error{Op: "Explore", Kind: KindValidation}) {
		t.Error("should match on Op and Kind")
	}
	if errors.Is(err, &Error{Op: "Other", Kind: KindValidation}) {
		t.Error("should not match a different Op")
	}
	if errors.Is(err, &Error{Kind: KindSchema}) {
		t.Error("should not match a different Kind")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("should delegate to the underlying sentinel")
	}
}

func TestWithContextDoesNotMutate(t *testing.T) {
	base := NewResolutionError("Explore", errors.New("boom"))
	_ = base.WithContext(map[string]any{"module": "shop.v1"})
	if base.Context != nil {
		t.Error("WithContext should copy, not mutate the receiver")
	}
}
