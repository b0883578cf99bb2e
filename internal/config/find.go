package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Where a configuration file was found.
const (
	SourceExplicit = "explicit"
	SourceRepo     = "repo-up"
	SourceXDG      = "xdg"
	SourceHome     = "home"
)

var (
	dotFilenames = []string{
		".jscomments.yaml",
		".jscomments.yml",
		".jscomments.toml",
		".jscomments.json",
	}
	xdgFilenames = []string{
		"config.yaml",
		"config.yml",
		"config.toml",
		"config.json",
	}
)

// Find locates the configuration file to load. The search order is the
// explicit path, then repoDir and each of its parents, then
// $XDG_CONFIG_HOME/jscomments, then the home directory. An empty path with a
// nil error means no file exists.
func Find(repoDir, explicitPath, xdgHome, home string) (path string, where string, err error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		candidate, err := filepath.Abs(explicit)
		if err != nil {
			return "", "", err
		}
		info, err := os.Stat(candidate)
		if err != nil {
			return "", "", fmt.Errorf("config %s: %w", explicit, err)
		}
		if info.IsDir() {
			return "", "", fmt.Errorf("JSCOMMENTS_CONFIG %q points to a directory", candidate)
		}
		return candidate, SourceExplicit, nil
	}

	start := strings.TrimSpace(repoDir)
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", "", err
	}
	for {
		if found := firstExisting(dir, dotFilenames); found != "" {
			return found, SourceRepo, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	homeDir := resolveHome(home)
	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		if found := firstExisting(filepath.Join(xdgRoot, "jscomments"), xdgFilenames); found != "" {
			return found, SourceXDG, nil
		}
	}
	if homeDir != "" {
		if found := firstExisting(homeDir, dotFilenames); found != "" {
			return found, SourceHome, nil
		}
	}
	return "", "", nil
}

func resolveHome(home string) string {
	if h := strings.TrimSpace(home); h != "" {
		return h
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return h
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}
