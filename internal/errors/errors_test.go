package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

type navFailure struct{}

func (navFailure) Error() string           { return "Parent pages missing for the following:\n  /a/b/" }
func (navFailure) Category() ErrorCategory { return CategoryNavigation }

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "_config.yml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "_config.yml" {
			t.Errorf("expected context file=_config.yml, got %v", file)
		}
	})

	t.Run("Error string with cause", func(t *testing.T) {
		err := WrapError(fmt.Errorf("permission denied"), CategoryFileSystem, "failed to read config").Build()
		want := "[filesystem:error] failed to read config: permission denied"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("Unwrap reaches the cause", func(t *testing.T) {
		cause := stderrors.New("boom")
		err := InternalError("unexpected").WithCause(cause).Build()
		if !stderrors.Is(err, cause) {
			t.Error("expected errors.Is to find the cause")
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := ConfigError("bad").Build()
		derived := base.WithContext("key", "value")
		if _, ok := base.Context().Get("key"); ok {
			t.Error("expected base context to stay untouched")
		}
		if v, _ := derived.Context().GetString("key"); v != "value" {
			t.Errorf("expected derived context value, got %q", v)
		}
	})
}

func TestGetCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorCategory
	}{
		{"classified", NewError(CategoryValidation, "bad front matter").Build(), CategoryValidation},
		{"wrapped classified", fmt.Errorf("run: %w", ConfigError("bad").Build()), CategoryConfig},
		{"domain error", navFailure{}, CategoryNavigation},
		{"wrapped domain error", fmt.Errorf("reconcile: %w", navFailure{}), CategoryNavigation},
		{"plain error", stderrors.New("plain"), CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCategory(tt.err); got != tt.expected {
				t.Errorf("GetCategory() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(navFailure{}); got != SeverityFatal {
		t.Errorf("domain error severity = %v, want fatal", got)
	}
	if got := GetSeverity(stderrors.New("x")); got != SeverityError {
		t.Errorf("plain error severity = %v, want error", got)
	}
	if got := GetSeverity(NewError(CategoryConfig, "x").WithSeverity(SeverityWarning).Build()); got != SeverityWarning {
		t.Errorf("builder severity = %v, want warning", got)
	}
}
