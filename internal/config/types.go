package config

import (
	"strings"

	"github.com/phyten/jscomments/internal/engine"
	"github.com/phyten/jscomments/internal/scan"
)

type EngineConfig struct {
	CommentTypes   *string   `yaml:"comment_types" toml:"comment_types" json:"comment_types"`
	Paths          *[]string `yaml:"path" toml:"path" json:"path"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	PathRegex      *[]string `yaml:"path_regex" toml:"path_regex" json:"path_regex"`
	ExcludeTypical *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	DetectLangs    *[]string `yaml:"detect_langs" toml:"detect_langs" json:"detect_langs"`
	TemplateText   *bool     `yaml:"template_text" toml:"template_text" json:"template_text"`
	WithText       *bool     `yaml:"with_text" toml:"with_text" json:"with_text"`
	Jobs           *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	Repo           *string   `yaml:"repo" toml:"repo" json:"repo"`
	NoGit          *bool     `yaml:"no_git" toml:"no_git" json:"no_git"`
	Output         *string   `yaml:"output" toml:"output" json:"output"`
	Color          *string   `yaml:"color" toml:"color" json:"color"`
	MaxFileBytes   *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	LogLevel       *string   `yaml:"log_level" toml:"log_level" json:"log_level"`
	WithLinks      *bool     `yaml:"with_links" toml:"with_links" json:"with_links"`
	LinkRemote     *string   `yaml:"link_remote" toml:"link_remote" json:"link_remote"`
	LinkScheme     *string   `yaml:"link_scheme" toml:"link_scheme" json:"link_scheme"`
}

type UIConfig struct {
	Fields   *string `yaml:"fields" toml:"fields" json:"fields"`
	Sort     *string `yaml:"sort" toml:"sort" json:"sort"`
	Truncate *int    `yaml:"truncate" toml:"truncate" json:"truncate"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	UI     UIConfig     `yaml:"ui" toml:"ui" json:"ui"`
}

type EngineSettings struct {
	CommentTypes   string
	Paths          []string
	Excludes       []string
	PathRegex      []string
	ExcludeTypical bool
	DetectLangs    []string
	TemplateText   bool
	WithText       bool
	Jobs           int
	Repo           string
	NoGit          bool
	Output         string
	Color          string
	MaxFileBytes   int
	LogLevel       string
	WithLinks      bool
	LinkRemote     string
	LinkScheme     string
}

type UISettings struct {
	Fields   string
	Sort     string
	Truncate int
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		CommentTypes:   string(opts.CommentTypes),
		Paths:          cloneStrings(opts.Paths),
		Excludes:       cloneStrings(opts.Excludes),
		PathRegex:      cloneStrings(opts.PathRegex),
		ExcludeTypical: opts.ExcludeTypical,
		DetectLangs:    cloneStrings(opts.DetectLangs),
		TemplateText:   opts.TemplateText,
		WithText:       opts.WithText,
		Jobs:           opts.Jobs,
		Repo:           opts.RepoDir,
		NoGit:          opts.NoGit,
		Output:         "table",
		Color:          "auto",
		MaxFileBytes:   opts.MaxFileBytes,
		LogLevel:       "info",
		WithLinks:      opts.WithLinks,
		LinkRemote:     opts.LinkRemote,
		LinkScheme:     opts.LinkScheme,
	}
}

func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.CommentTypes = scan.CommentTypes(s.CommentTypes)
	opts.Paths = cloneStrings(s.Paths)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.PathRegex = cloneStrings(s.PathRegex)
	opts.ExcludeTypical = s.ExcludeTypical
	opts.DetectLangs = cloneStrings(s.DetectLangs)
	opts.TemplateText = s.TemplateText
	opts.WithText = s.WithText
	opts.Jobs = s.Jobs
	if trimmed := strings.TrimSpace(s.Repo); trimmed != "" {
		opts.RepoDir = trimmed
	}
	opts.NoGit = s.NoGit
	opts.MaxFileBytes = s.MaxFileBytes
	opts.WithLinks = s.WithLinks
	opts.LinkRemote = s.LinkRemote
	opts.LinkScheme = s.LinkScheme
}

func DefaultUISettings() UISettings {
	return UISettings{
		Fields:   "",
		Sort:     "",
		Truncate: 0,
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
