package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/matzehuels/diagramkit/pkg/errors"
)

// Exit codes returned by the diagramkit binary.
const (
	ExitOK          = 0
	ExitFailure     = 1   // translation, rendering or I/O failure
	ExitUsage       = 2   // bad arguments, unsupported pair, unreadable input
	ExitInterrupted = 130 // SIGINT, shell convention
)

// Exit prints err to w and returns the process exit code for it.
// Interruptions are not printed.
func Exit(w io.Writer, err error) int {
	if err == nil {
		return ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+errors.UserMessage(err))
	return exitCode(err)
}

func exitCode(err error) int {
	if stderrors.Is(err, errInvalidDocument) {
		return ExitFailure
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidKind, errors.ErrCodeInvalidSource,
		errors.ErrCodeInvalidPath, errors.ErrCodeInvalidConfig, errors.ErrCodeFileNotFound,
		errors.ErrCodeUnsupportedTranslation:
		return ExitUsage
	}
	return ExitFailure
}
