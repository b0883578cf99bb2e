// Package opts holds the engine option defaults and the parsing shared by the
// CLI, the config layer and the HTTP API.
package opts

import (
	"fmt"
	"net/url"
	"runtime"
	"strconv"
	"strings"

	"github.com/phyten/jscomments/internal/detect"
	"github.com/phyten/jscomments/internal/engine"
	"github.com/phyten/jscomments/internal/scan"
)

const maxJobs = 64

var outputFormats = map[string]string{
	"table":    "table",
	"tsv":      "tsv",
	"json":     "json",
	"ndjson":   "ndjson",
	"jsonl":    "ndjson",
	"csv":      "csv",
	"md":       "md",
	"markdown": "md",
}

// Defaults returns the baseline options: every comment kind, one worker per
// CPU (capped), git listing enabled.
func Defaults(repoDir string) engine.Options {
	return engine.Options{
		CommentTypes: scan.AllComments,
		Jobs:         min(max(runtime.NumCPU(), 1), maxJobs),
		RepoDir:      repoDir,
	}
}

// queryBools maps boolean query parameters to the option they set.
var queryBools = map[string]func(*engine.Options) *bool{
	"template_text":   func(o *engine.Options) *bool { return &o.TemplateText },
	"with_text":       func(o *engine.Options) *bool { return &o.WithText },
	"with_links":      func(o *engine.Options) *bool { return &o.WithLinks },
	"no_git":          func(o *engine.Options) *bool { return &o.NoGit },
	"exclude_typical": func(o *engine.Options) *bool { return &o.ExcludeTypical },
}

// queryLists maps repeatable, comma separated query parameters.
var queryLists = map[string]func(*engine.Options) *[]string{
	"path":         func(o *engine.Options) *[]string { return &o.Paths },
	"exclude":      func(o *engine.Options) *[]string { return &o.Excludes },
	"path_regex":   func(o *engine.Options) *[]string { return &o.PathRegex },
	"detect_langs": func(o *engine.Options) *[]string { return &o.DetectLangs },
}

// ApplyWebQueryToOptions overlays recognised query parameters on def. For
// scalar parameters the last value wins. Validation is left to
// NormalizeAndValidate.
func ApplyWebQueryToOptions(def engine.Options, q url.Values) (engine.Options, error) {
	out := def
	if raw, ok := lastLiteralValue(q["comment_types"]); ok {
		out.CommentTypes = scan.CommentTypes(raw)
	}
	for key, field := range queryBools {
		raw, ok := lastLiteralValue(q[key])
		if !ok {
			continue
		}
		v, err := ParseBool(raw, key)
		if err != nil {
			return out, err
		}
		*field(&out) = v
	}
	for key, field := range queryLists {
		if raw := q[key]; len(raw) > 0 {
			*field(&out) = SplitMulti(raw)
		}
	}
	if raw, ok := lastLiteralValue(q["jobs"]); ok {
		n, err := ParseIntInRange(raw, "jobs", 1, maxJobs)
		if err != nil {
			return out, err
		}
		out.Jobs = n
	}
	if raw, ok := lastLiteralValue(q["max_file_bytes"]); ok {
		n, err := parseInt(raw, "max_file_bytes")
		if err != nil {
			return out, err
		}
		out.MaxFileBytes = n
	}
	for i := len(q["repo"]) - 1; i >= 0; i-- {
		if v := strings.TrimSpace(q["repo"][i]); v != "" {
			out.RepoDir = v
			break
		}
	}
	return out, nil
}

// NormalizeAndValidate canonicalizes o in place and rejects values outside
// the accepted ranges.
func NormalizeAndValidate(o *engine.Options) error {
	ct, err := scan.ParseCommentTypes(string(o.CommentTypes))
	if err != nil {
		return fmt.Errorf("invalid --comment-types: %s", o.CommentTypes)
	}
	o.CommentTypes = ct
	if o.Jobs < 1 || o.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}
	if o.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0")
	}
	if strings.TrimSpace(o.RepoDir) == "" {
		o.RepoDir = "."
	}

	o.Paths = compact(o.Paths)
	o.Excludes = compact(o.Excludes)
	o.PathRegex = compact(o.PathRegex)
	o.DetectLangs = compact(o.DetectLangs)
	for _, lang := range o.DetectLangs {
		if !detect.KnownLanguage(lang) {
			return fmt.Errorf("invalid --detect-langs: %s", lang)
		}
	}
	if len(o.DetectLangs) > 0 {
		o.DetectLangs = detect.CanonicalDetectLangs(o.DetectLangs)
	}

	o.PathRegexCompiled, err = engine.CompilePathRegex(o.PathRegex)
	if err != nil {
		return fmt.Errorf("invalid --path-regex: %w", err)
	}
	return nil
}

// ParseBool accepts 1/0, true/false, yes/no and on/off in any case.
func ParseBool(raw, key string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses raw and checks it lies in [lo, hi]. hi < lo means
// there is no upper bound.
func ParseIntInRange(raw, key string, lo, hi int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	bounded := hi >= lo
	switch {
	case n < lo && !bounded:
		return 0, fmt.Errorf("%s must be >= %d", key, lo)
	case n < lo, bounded && n > hi:
		return 0, fmt.Errorf("%s must be between %d and %d", key, lo, hi)
	}
	return n, nil
}

// NormalizeOutput maps an --output value to its canonical name.
func NormalizeOutput(value string) (string, error) {
	if v, ok := outputFormats[strings.ToLower(strings.TrimSpace(value))]; ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid --output: %s", value)
}

// SplitMulti flattens repeated values that may each hold a comma separated
// list, dropping blanks.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			if part := strings.TrimSpace(piece); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func lastLiteralValue(vals []string) (string, bool) {
	flat := SplitMulti(vals)
	if len(flat) == 0 {
		return "", false
	}
	return flat[len(flat)-1], true
}

// compact trims entries and drops empty ones, reusing the backing array.
func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
