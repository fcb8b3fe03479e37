package main

import (
	"os"

	"github.com/make-your-choice/choice-ctl/cmd"
	"github.com/make-your-choice/choice-ctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
