package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/paperclass/internal/cli"
	"github.com/ppiankov/paperclass/internal/model"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps error kinds to distinct exit statuses
func exitCode(err error) int {
	switch {
	case errors.Is(err, model.ErrConfiguration):
		return 2
	case errors.Is(err, model.ErrInputSchema):
		return 3
	case errors.Is(err, model.ErrIO):
		return 4
	default:
		return 1
	}
}
