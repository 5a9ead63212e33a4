package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	shlex "github.com/anmitsu/go-shlex"
	"github.com/pkg/errors"
)

func detectEditorCommand() ([]string, bool) {
	return detectEditorCommandInternal(runtime.GOOS, os.Getenv, exec.LookPath)
}

// detectEditorCommandInternal prefers $VISUAL, then $EDITOR, then a
// platform default found on PATH.
func detectEditorCommandInternal(goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	candidates := []string{getenv("VISUAL"), getenv("EDITOR")}
	if strings.EqualFold(goos, "windows") {
		candidates = append(candidates, "notepad.exe")
	} else {
		candidates = append(candidates, "vim", "nano", "vi")
	}

	for _, candidate := range candidates {
		args, err := shlex.Split(strings.TrimSpace(candidate), true)
		if err != nil || len(args) == 0 {
			continue
		}
		resolved, err := lookPath(expandUserPath(args[0]))
		if err != nil {
			continue
		}
		args[0] = resolved
		return args, true
	}
	return nil, false
}

func expandUserPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// openInEditor hands the terminal to the editor until it exits.
func (app *Application) openInEditor(path string) error {
	if err := app.screen.Suspend(); err != nil {
		return errors.Wrap(err, "couldn't release terminal")
	}
	defer func() {
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	args := append(append([]string(nil), app.editor...), path)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Dir = filepath.Dir(path)
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "editor failed on %s", filepath.Base(path))
	}
	return nil
}
