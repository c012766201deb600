package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/adhere/internal/adherence"
	"github.com/julianstephens/adhere/internal/logger"
	"github.com/julianstephens/adhere/internal/migration"
	"github.com/julianstephens/adhere/internal/storage"
	"github.com/julianstephens/adhere/internal/tracker"
)

// Exit codes
const (
	ExitFailure = 1
	// ExitUsage marks input the user can correct (bad day, future check-in, unknown id)
	ExitUsage = 2
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests a next step for errors the user can act on.
func Hint(err error) string {
	switch {
	case errors.Is(err, migration.ErrSchemaTooNew):
		return "the database was written by a newer adhere; upgrade before continuing"
	case errors.Is(err, tracker.ErrFutureCheckin):
		return "check-ins can only be recorded for today or earlier"
	case errors.Is(err, tracker.ErrInvalidDay):
		return "use YYYY-MM-DD, 'today' or 'yesterday'"
	case errors.Is(err, tracker.ErrTreatmentArchived):
		return "archived treatments are read-only; add a new treatment to resume tracking"
	case errors.Is(err, adherence.ErrInvalidWindow):
		return "calendar windows are whole weeks up to 728 days, e.g. 28 or 84"
	case errors.Is(err, storage.ErrNotFound):
		return "run 'adhere subject list' or 'adhere treatment list' to see what exists"
	}
	return ""
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, tracker.ErrFutureCheckin),
		errors.Is(err, tracker.ErrInvalidDay),
		errors.Is(err, tracker.ErrTreatmentArchived),
		errors.Is(err, adherence.ErrInvalidWindow),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrAlreadyExists):
		return ExitUsage
	}
	return ExitFailure
}

// Fatal logs an error and exits with ExitCode(err). A nil error is a no-op.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(ExitCode(err))
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(ExitFailure)
}
