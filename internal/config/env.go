package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/jscomments/internal/engine/opts"
)

// EnvPrefix starts every environment variable the loader reads.
const EnvPrefix = "JSCOMMENTS_"

// FromEnv reads JSCOMMENTS_* variables. Blank values are ignored; every
// malformed value is reported, joined into one error.
func FromEnv(getenv func(string) string) (Config, error) {
	var cfg Config
	if getenv == nil {
		return cfg, nil
	}
	e, u := &cfg.Engine, &cfg.UI

	// Jobs accepts large values here so NormalizeAndValidate reports the
	// range error for every input path alike.
	vars := []struct {
		name string
		set  func(raw string) error
	}{
		{"COMMENT_TYPES", envString(&e.CommentTypes)},
		{"PATH", envList(&e.Paths)},
		{"EXCLUDE", envList(&e.Excludes)},
		{"PATH_REGEX", envList(&e.PathRegex)},
		{"DETECT_LANGS", envList(&e.DetectLangs)},
		{"EXCLUDE_TYPICAL", envBool(&e.ExcludeTypical, "JSCOMMENTS_EXCLUDE_TYPICAL")},
		{"TEMPLATE_TEXT", envBool(&e.TemplateText, "JSCOMMENTS_TEMPLATE_TEXT")},
		{"WITH_TEXT", envBool(&e.WithText, "JSCOMMENTS_WITH_TEXT")},
		{"OUTPUT", envString(&e.Output)},
		{"COLOR", envString(&e.Color)},
		{"MAX_FILE_BYTES", envInt(&e.MaxFileBytes, "JSCOMMENTS_MAX_FILE_BYTES")},
		{"JOBS", envInt(&e.Jobs, "JSCOMMENTS_JOBS")},
		{"REPO", envString(&e.Repo)},
		{"NO_GIT", envBool(&e.NoGit, "JSCOMMENTS_NO_GIT")},
		{"LOG_LEVEL", envString(&e.LogLevel)},
		{"WITH_LINKS", envBool(&e.WithLinks, "JSCOMMENTS_WITH_LINKS")},
		{"LINK_REMOTE", envString(&e.LinkRemote)},
		{"LINK_SCHEME", envString(&e.LinkScheme)},
		{"FIELDS", envString(&u.Fields)},
		{"SORT", envString(&u.Sort)},
		{"TRUNCATE", envInt(&u.Truncate, "JSCOMMENTS_TRUNCATE")},
	}
	var errs []error
	for _, v := range vars {
		raw := strings.TrimSpace(getenv(EnvPrefix + v.name))
		if raw == "" {
			continue
		}
		if err := v.set(raw); err != nil {
			errs = append(errs, err)
		}
	}
	return cfg, errors.Join(errs...)
}

func envString(target **string) func(string) error {
	return func(raw string) error {
		*target = &raw
		return nil
	}
}

func envList(target **[]string) func(string) error {
	return func(raw string) error {
		list := engineopts.SplitMulti([]string{raw})
		if list == nil {
			list = []string{}
		}
		*target = &list
		return nil
	}
}

func envBool(target **bool, key string) func(string) error {
	return func(raw string) error {
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			return err
		}
		*target = &v
		return nil
	}
}

func envInt(target **int, key string) func(string) error {
	return func(raw string) error {
		v, err := engineopts.ParseIntInRange(raw, key, 0, math.MaxInt)
		if err != nil {
			return err
		}
		*target = &v
		return nil
	}
}
