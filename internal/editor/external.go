package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	filePerm       = 0o600
	fallbackEditor = "vi"
)

var errNoEditor = errors.New("no editor configured")

// Session is one round trip of a notice description through the user's
// editor.
type Session struct {
	Path string

	// Editor is the command line the file is opened with, as read from
	// $VISUAL or $EDITOR when the session started.
	Editor string
}

// Start writes body to a temp file for the editor to open.
func Start(body string) (Session, error) {
	f, err := os.CreateTemp("", "notice-*.txt")
	if err != nil {
		return Session{}, fmt.Errorf("create temp file: %w", err)
	}
	defer f.Close()

	if err := f.Chmod(filePerm); err != nil {
		return Session{}, fmt.Errorf("chmod temp file %q: %w", f.Name(), err)
	}
	if _, err := f.WriteString(body); err != nil {
		return Session{}, fmt.Errorf("write temp file %q: %w", f.Name(), err)
	}
	return Session{Path: f.Name(), Editor: preferredEditor()}, nil
}

func preferredEditor() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			return v
		}
	}
	return fallbackEditor
}

// Cmd builds the process that edits the session file. Editor may carry
// flags, e.g. "code --wait".
func (s Session) Cmd() (*exec.Cmd, error) {
	argv := strings.Fields(s.Editor)
	if len(argv) == 0 {
		return nil, errNoEditor
	}

	cmd := exec.Command(argv[0], append(argv[1:], s.Path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// Finish reads the edited text back and removes the temp file. Editors
// append a final newline, which is dropped.
func (s Session) Finish() (string, error) {
	defer os.Remove(s.Path)

	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read edited file %q: %w", s.Path, err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}
