package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	switch GetCategory(err) {
	case CategoryValidation:
		return 2 // Front matter must be fixed
	case CategoryNavigation:
		return 3
	case CategoryNamespace:
		return 4
	case CategoryConfig:
		return 7
	case CategoryFileSystem:
		return 11
	case CategoryInternal:
		if _, ok := AsClassified(err); ok {
			return 10
		}
		return 1 // Unclassified
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	classified, ok := AsClassified(err)
	if !ok {
		var categorized Categorized
		if stderrors.As(err, &categorized) {
			// Domain errors carry the full report in their message.
			return categorized.Error()
		}
		return fmt.Sprintf("Error: %v", err)
	}

	if a.verbose {
		return err.Error()
	}
	if classified.Cause() != nil {
		return fmt.Sprintf("%s: %v", classified.Message(), classified.Cause())
	}
	return classified.Message()
}

// Report logs err when appropriate, writes the user-facing message to w and
// returns the exit code. A nil error writes nothing and returns 0.
func (a *CLIErrorAdapter) Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if a.shouldLog(err) {
		a.logError(err)
	}
	_, _ = fmt.Fprintf(w, "%s\n", a.FormatError(err))
	return a.ExitCodeFor(err)
}

// HandleError reports err on stderr and exits the program with its exit code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	os.Exit(a.Report(os.Stderr, err))
}

func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}
	// Domain errors are already fully described by FormatError.
	if _, ok := AsClassified(err); ok {
		return GetSeverity(err) == SeverityFatal
	}
	return false
}

func (a *CLIErrorAdapter) logError(err error) {
	level := a.slogLevelFromSeverity(GetSeverity(err))
	attrs := []slog.Attr{
		slog.String("category", string(GetCategory(err))),
	}
	message := "Command failed"
	if classified, ok := AsClassified(err); ok {
		message = classified.Message()
		for key, value := range classified.Context() {
			attrs = append(attrs, slog.Any(key, value))
		}
	}
	a.logger.LogAttrs(context.Background(), level, message, attrs...)
}

func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
