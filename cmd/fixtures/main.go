package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/brian-c-moore/fixtures-fixtures/internal/app"
	"github.com/brian-c-moore/fixtures-fixtures/internal/logging"
)

// main is the entry point for the fixtures command.
func main() {
	runner := app.NewAppRunner()

	err := runner.Run(os.Args[1:])
	if err != nil {
		if errors.Is(err, app.ErrUsage) || errors.Is(err, app.ErrMissingArgs) {
			fmt.Fprintln(os.Stderr, "")
			runner.Usage(os.Stderr)
		}

		// Make sure the failure is visible even when logging is turned off.
		if logging.GetLevel() < logging.Error {
			logging.SetLevel(logging.Error)
		}
		logging.Logf(logging.Error, "fixtures: %v", err)
		os.Exit(1)
	}
}
