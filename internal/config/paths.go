package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm = 0o755
)

type Paths struct {
	Root string
	Logs string
}

// ResolvePaths resolves and creates the client's data directories.
func ResolvePaths(cfg AppConfig) (Paths, error) {
	p := Paths{
		Root: cfg.DataDir,
		Logs: filepath.Join(cfg.DataDir, "logs"),
	}

	for _, dir := range []string{p.Root, p.Logs} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return Paths{}, fmt.Errorf("create data dir %q: %w", dir, err)
		}
	}

	return p, nil
}
