package engine

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var typicalExcludePatterns = []string{
	":(glob,exclude)vendor/**",
	":(glob,exclude)node_modules/**",
	":(glob,exclude)dist/**",
	":(glob,exclude)build/**",
	":(glob,exclude)coverage/**",
	":(glob,exclude)**/*.min.*",
}

// buildPathspecs builds the list to append after "--" for `git ls-files`.
func buildPathspecs(includes, excludes []string, typical bool) []string {
	out := make([]string, 0, len(includes)+len(excludes)+len(typicalExcludePatterns)+1)
	for _, raw := range includes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		out = append(out, filepath.ToSlash(trimmed))
	}
	if len(out) == 0 {
		out = append(out, ".")
	}

	if typical {
		out = append(out, typicalExcludePatterns...)
	}

	for _, raw := range excludes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.ToSlash(trimmed)
		if strings.HasPrefix(trimmed, ":!") || strings.HasPrefix(trimmed, ":(exclude)") || strings.HasPrefix(trimmed, ":(glob,exclude)") {
			out = append(out, trimmed)
			continue
		}
		out = append(out, ":(glob,exclude)"+trimmed)
	}
	return out
}

// excludeGlob strips the pathspec magic from an exclude entry.
func excludeGlob(spec string) string {
	for _, prefix := range []string{":(glob,exclude)", ":(exclude)", ":!"} {
		if strings.HasPrefix(spec, prefix) {
			return strings.TrimPrefix(spec, prefix)
		}
	}
	return spec
}

// matchExclude applies a pathspec style exclude to a slash separated
// relative path when git is not available.
func matchExclude(glob, rel string) bool {
	glob = strings.TrimPrefix(excludeGlob(glob), "./")
	if glob == "" {
		return false
	}
	if dir, ok := strings.CutSuffix(glob, "/**"); ok && !strings.ContainsAny(dir, "*?[") {
		return rel == dir || strings.HasPrefix(rel, dir+"/")
	}
	if ok, _ := path.Match(glob, rel); ok {
		return true
	}
	base, deep := strings.CutPrefix(glob, "**/")
	if deep || !strings.Contains(glob, "/") {
		if ok, _ := path.Match(base, path.Base(rel)); ok {
			return true
		}
	}
	return false
}

// CompilePathRegex compiles --path-regex values, ignoring blank entries.
func CompilePathRegex(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, raw := range patterns {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		rx, err := regexp.Compile(trimmed)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, rx)
	}
	return compiled, nil
}

func filterPathsByRegex(paths []string, rx []*regexp.Regexp) []string {
	if len(rx) == 0 {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		for _, r := range rx {
			if r.MatchString(p) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
