package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the manifest file searched for during discovery.
const FileName = "Cargo.toml"

// NotFoundError reports that no manifest could be located.
type NotFoundError struct {
	// Dir is the directory discovery started from. Empty when Path is set.
	Dir string
	// Path is the explicit manifest path that did not exist.
	Path string
}

func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("manifest path `%s` does not exist", e.Path)
	}
	return fmt.Sprintf("could not find `%s` in `%s` or any parent directory", FileName, e.Dir)
}

// FindRoot returns the absolute path of the manifest for cwd. A non-empty
// override is used as-is (after expansion) and cwd is not consulted.
func FindRoot(cwd, override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		return explicitManifest(cwd, override)
	}
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		cwd = wd
	}
	start, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("resolve working directory %q: %w", cwd, err)
	}
	return Find(start, FileName)
}

// Find searches dir and each of its ancestors for a regular file named name.
func Find(dir, name string) (string, error) {
	current := filepath.Clean(dir)
	for {
		candidate := filepath.Join(current, name)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("inspect %s: %w", candidate, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", &NotFoundError{Dir: dir}
		}
		current = parent
	}
}

// Dir returns the package root directory for a manifest path.
func Dir(manifestPath string) string {
	return filepath.Dir(manifestPath)
}

func explicitManifest(cwd, override string) (string, error) {
	path, err := expandPath(strings.TrimSpace(override))
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) && cwd != "" {
		path = filepath.Join(cwd, path)
	}
	path, err = filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve manifest path %q: %w", override, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Path: path}
		}
		return "", fmt.Errorf("inspect manifest path %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("manifest path `%s` is a directory", path)
	}
	return path, nil
}

func expandPath(pathValue string) (string, error) {
	if !strings.HasPrefix(pathValue, "~") {
		return filepath.Clean(pathValue), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if pathValue == "~" {
		return home, nil
	}
	if pathValue[1] == '/' || pathValue[1] == '\\' {
		return filepath.Join(home, pathValue[2:]), nil
	}
	return filepath.Clean(pathValue), nil
}
