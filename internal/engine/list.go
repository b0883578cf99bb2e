package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phyten/jscomments/internal/detect"
	"github.com/phyten/jscomments/internal/execx"
)

// errNotRepo means the directory can be scanned, just not through git.
var errNotRepo = errors.New("not a git repository")

// listFiles returns slash separated candidate paths relative to RepoDir.
// Tracked and untracked-but-not-ignored files come from git; without git the
// tree is walked.
func listFiles(ctx context.Context, opts Options) ([]string, error) {
	var (
		files []string
		err   error
	)
	if !opts.NoGit {
		files, err = gitListFiles(ctx, opts)
		if errors.Is(err, errNotRepo) {
			opts.logger().Debug("falling back to directory walk", "repo", opts.RepoDir, "reason", err)
			files, err = walkFiles(opts.RepoDir, opts.Paths, opts.Excludes, opts.ExcludeTypical)
		}
	} else {
		files, err = walkFiles(opts.RepoDir, opts.Paths, opts.Excludes, opts.ExcludeTypical)
	}
	if err != nil {
		return nil, err
	}
	files = filterPathsByRegex(files, opts.PathRegexCompiled)
	out := files[:0]
	for _, f := range files {
		// extensionless files may still be node scripts with a hashbang
		if detect.IsSourcePath(f) || filepath.Ext(f) == "" {
			out = append(out, f)
		}
	}
	return out, nil
}

func gitListFiles(ctx context.Context, opts Options) ([]string, error) {
	args := []string{"-c", "core.quotePath=false", "ls-files", "-z", "--cached", "--others", "--exclude-standard", "--"}
	args = append(args, buildPathspecs(opts.Paths, opts.Excludes, opts.ExcludeTypical)...)
	out, _, err := opts.runner().Run(ctx, opts.RepoDir, "git", args...)
	if err != nil {
		if execx.IsNotFound(err) || execx.ExitCode(err) == 128 {
			return nil, fmt.Errorf("%w: %v", errNotRepo, err)
		}
		return nil, fmt.Errorf("git ls-files: %w", err)
	}
	files := execx.SplitNUL(out)
	sort.Strings(files)
	return dedupe(files), nil
}

var typicalDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
}

// SkipDir reports whether a directory with this base name is left out of
// scans. typical adds vendor, node_modules and build output directories.
func SkipDir(name string, typical bool) bool {
	return name == ".git" || typical && typicalDirs[name]
}

func walkFiles(root string, includes, excludes []string, typical bool) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	starts := make([]string, 0, len(includes))
	for _, inc := range includes {
		if inc = strings.TrimSpace(inc); inc != "" {
			starts = append(starts, inc)
		}
	}
	if len(starts) == 0 {
		starts = append(starts, ".")
	}
	excluded := func(rel string) bool { return excludedBy(excludes, rel) }

	var files []string
	for _, start := range starts {
		err := filepath.WalkDir(filepath.Join(root, filepath.FromSlash(start)), func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return relErr
			}
			rel = filepath.ToSlash(rel)
			name := d.Name()
			if d.IsDir() {
				if rel == "." {
					return nil
				}
				if SkipDir(name, typical) || excluded(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if excluded(rel) || typical && strings.Contains(name, ".min.") {
				return nil
			}
			files = append(files, rel)
			return nil
		})
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("path not found: %s", start)
			}
			return nil, fmt.Errorf("walk %s: %w", start, err)
		}
	}
	sort.Strings(files)
	return dedupe(files), nil
}

func excludedBy(excludes []string, rel string) bool {
	for _, ex := range excludes {
		if matchExclude(strings.TrimSpace(ex), rel) {
			return true
		}
	}
	return false
}

func dedupe(sorted []string) []string {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
