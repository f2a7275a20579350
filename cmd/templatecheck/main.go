package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/qcodegen/templatecheck/internal/orchestration"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0   // All templates passed
	ExitCheckFailed = 1   // One or more templates failed a check
	ExitInterrupted = 130 // Run canceled by Ctrl+C
)

// CheckFailureError indicates that the suite ran to completion, but one
// or more templates failed their checklist.
type CheckFailureError struct {
	Message string
}

func (e *CheckFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		if errors.Is(err, orchestration.ErrInterrupted) {
			os.Exit(ExitInterrupted)
		}

		// Check failures and configuration/runtime errors both exit 1
		os.Exit(ExitCheckFailed)
	}
}
