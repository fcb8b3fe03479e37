package hosts

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/kballard/go-shellquote"

	"github.com/make-your-choice/choice-ctl/internal/errors"
	"github.com/make-your-choice/choice-ctl/internal/logging"
	"github.com/make-your-choice/choice-ctl/internal/system"
)

// BackupSuffix is appended to the table path to name the backup copy.
const BackupSuffix = ".bak"

const defaultMode fs.FileMode = 0o644

// FlushCommand is one name-cache invalidation command.
type FlushCommand struct {
	Name string
	Args []string
}

func (c FlushCommand) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// ParseFlushCommands splits shell-quoted command lines such as
// `resolvectl flush-caches`. Blank lines are skipped.
func ParseFlushCommands(lines []string) ([]FlushCommand, error) {
	cmds := make([]FlushCommand, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		words, err := shellquote.Split(line)
		if err != nil {
			return nil, fmt.Errorf("invalid flush command %q: %w", line, err)
		}
		cmds = append(cmds, FlushCommand{Name: words[0], Args: words[1:]})
	}
	return cmds, nil
}

// ResolvePath places path under an alternate filesystem root. An empty root
// returns path unchanged. Symlinks are resolved inside root and cannot
// escape it.
func ResolvePath(root, path string) (string, error) {
	if root == "" {
		return path, nil
	}
	resolved, err := securejoin.SecureJoin(root, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s under %s: %w", path, root, err)
	}
	return resolved, nil
}

// Table reads and rewrites the hosts table.
type Table struct {
	Path       string
	BackupPath string
	FS         system.FileSystem
	Executor   system.CommandExecutor
	Flushers   []FlushCommand
}

// NewTable returns a table at path using the default OS implementations and
// the platform's flush commands.
func NewTable(path string) *Table {
	return &Table{
		Path:       path,
		BackupPath: path + BackupSuffix,
		FS:         system.DefaultFS(),
		Executor:   system.DefaultExecutor(),
		Flushers:   DefaultFlushCommands(),
	}
}

// Read returns the current table. A missing table reads as empty.
func (t *Table) Read() (string, error) {
	data, err := t.FS.ReadFile(t.Path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logging.Debug("hosts table missing, starting empty", "path", t.Path)
			return "", nil
		}
		return "", errors.Wrap(errors.ExitGeneralError, fmt.Sprintf("failed to read %s", t.Path), err)
	}
	return string(data), nil
}

// Persist backs up the current table, overwrites it with doc and flushes
// name caches. Only a failed write is reported.
func (t *Table) Persist(ctx context.Context, doc string) error {
	if t.BackupPath != "" {
		if err := t.FS.CopyFile(t.Path, t.BackupPath); err != nil {
			logging.Debug("backup skipped", "path", t.BackupPath, "error", err)
		}
	}

	mode := defaultMode
	if info, err := t.FS.Stat(t.Path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := t.FS.WriteFile(t.Path, []byte(doc), mode); err != nil {
		return errors.WriteFailure(errors.WriteReasonOf(err), t.Path, err)
	}
	logging.Debug("hosts table written", "path", t.Path, "bytes", len(doc))

	t.Flush(ctx)
	return nil
}

// Flush runs every flush command. Failures are logged and ignored; most
// systems only have one of the caches installed.
func (t *Table) Flush(ctx context.Context) {
	for _, c := range t.Flushers {
		out, err := t.Executor.Execute(ctx, c.Name, c.Args...)
		if err != nil {
			logging.Debug("cache flush failed", "command", c.String(), "error", err, "output", strings.TrimSpace(string(out)))
			continue
		}
		logging.Debug("cache flushed", "command", c.String())
	}
}
