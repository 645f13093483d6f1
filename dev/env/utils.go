package devenv

import (
	"os"
	"path/filepath"
	"regexp"
)

var modName = regexp.MustCompile(`(?m)^module *([\w\-_/.]+)$`)

func isWorkspaceRoot(currentdir string) bool {
	mod, err := os.ReadFile(filepath.Join(currentdir, "go.mod"))
	if err != nil {
		return false
	}
	matches := modName.FindSubmatch(mod)
	return len(matches) >= 2 && string(matches[1]) == "ao3search"
}

// GetWorkspaceRoot walks up from the working directory until it finds the
// directory holding this module's go.mod.
func GetWorkspaceRoot() (string, error) {
	currentdir, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}

	for {
		if isWorkspaceRoot(currentdir) {
			return currentdir, nil
		}
		parent := filepath.Dir(currentdir)
		if parent == currentdir {
			return "", os.ErrNotExist
		}
		currentdir = parent
	}
}

// TestdataPath resolves `name` inside the testdata directory of the ao3 scraper.
func TestdataPath(name string) (string, error) {
	root, err := GetWorkspaceRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "internal", "scrapers", "ao3", "testdata", name), nil
}
