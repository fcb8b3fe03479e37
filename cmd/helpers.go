package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/make-your-choice/choice-ctl/internal/app"
	"github.com/make-your-choice/choice-ctl/internal/config"
	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/logging"
	"github.com/make-your-choice/choice-ctl/internal/policy"
	"github.com/make-your-choice/choice-ctl/internal/region"
)

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)

// settings returns the loaded settings of the default app.
func settings() *config.Settings {
	return app.Default.Settings
}

// catalog returns the region catalog of the default app.
func catalog() *region.Catalog {
	return app.Default.Catalog
}

// selectRegions resolves region arguments, falling back to the saved
// selection when none are given.
func selectRegions(args []string) (region.Selection, error) {
	if len(args) == 0 {
		args = settings().Selection
	}
	return catalog().Resolve(args)
}

// regionsOrAll resolves region arguments, or returns the whole catalog.
func regionsOrAll(args []string) ([]region.Region, error) {
	if len(args) == 0 {
		return catalog().Regions(), nil
	}
	sel, err := catalog().Resolve(args)
	if err != nil {
		return nil, err
	}
	out := make([]region.Region, 0, len(sel))
	for _, id := range sel {
		r, _ := catalog().Get(id)
		out = append(out, r)
	}
	return out, nil
}

// parseMode parses a mode flag, defaulting to the saved mode.
func parseMode(flag string) (policy.Mode, error) {
	if flag == "" {
		flag = settings().Mode
	}
	mode, err := policy.ParseMode(flag)
	if err != nil {
		return "", errors.ValidationError(err.Error())
	}
	return mode, nil
}

// parseBlockMode parses a block flag, defaulting to the saved block mode.
func parseBlockMode(flag string) (policy.BlockMode, error) {
	if flag == "" {
		flag = settings().BlockMode
	}
	block, err := policy.ParseBlockMode(flag)
	if err != nil {
		return block, errors.ValidationError(err.Error())
	}
	return block, nil
}

// confirm asks a yes/no question on out and reads the answer from in.
// Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func modeLabel(m policy.Mode) string {
	if m == policy.ModeUniversalRedirect {
		return "Universal Redirect"
	}
	return "Gatekeep"
}
