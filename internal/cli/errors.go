package cli

import (
	"errors"
	"io/fs"

	"github.com/mesh-intelligence/journal/internal/auth"
	"github.com/mesh-intelligence/journal/internal/content"
	"github.com/mesh-intelligence/journal/internal/export"
	"github.com/mesh-intelligence/journal/internal/theme"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// CLI errors.
var (
	errLocked       = errors.New("journal is locked")
	errWrongPIN     = errors.New("incorrect PIN")
	errEmptyPIN     = errors.New("new PIN must not be empty; use 'journal pin clear' to remove it")
	errConfirm      = errors.New("refusing to delete every entry without --yes")
	errNoContent    = errors.New("no content given: use --content or --file")
	errBothContent  = errors.New("use only one of --content and --file")
	errNoChanges    = errors.New("nothing to change: pass at least one field flag")
	errDateSelector = errors.New("give either an id or --date, not both")
)

// userErrors are sentinels caused by bad input rather than the system.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidDate,
	types.ErrDuplicateDate,
	types.ErrInvalidEntry,
	types.ErrInvalidText,
	types.ErrTooManyMoods,
	types.ErrInvalidTag,
	content.ErrEmpty,
	export.ErrInvalidRange,
	auth.ErrPINTooLong,
	theme.ErrUnknownMode,
	fs.ErrNotExist,
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitUserError, err: err}
}

func sysError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// classify tags err as a user error when it wraps a known input sentinel
// and as a system error otherwise.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// exitCode maps err to a process exit code. Errors without a code come from
// argument parsing and count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
