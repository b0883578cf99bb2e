package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phyten/jscomments/internal/config"
	"github.com/phyten/jscomments/internal/engine"
	"github.com/phyten/jscomments/internal/engine/opts"
)

// engineFlags are the scan options shared by scan, serve and watch. Only
// flags the user actually set take part in the config merge.
type engineFlags struct {
	commentTypes   string
	paths          []string
	excludes       []string
	pathRegex      []string
	detectLangs    []string
	excludeTypical bool
	templateText   bool
	withText       bool
	noGit          bool
	jobs           int
	maxFileBytes   int
	repo           string
	withLinks      bool
	linkRemote     string
}

func (ef *engineFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&ef.commentTypes, "comment-types", "t", "all", "all|singleline|multiline|html|jsdoc")
	f.StringSliceVarP(&ef.paths, "path", "p", nil, "limit to these paths (repeatable, comma separated)")
	f.StringSliceVarP(&ef.excludes, "exclude", "x", nil, "exclude glob (repeatable)")
	f.StringSliceVar(&ef.pathRegex, "path-regex", nil, "keep paths matching any of these regexps")
	f.StringSliceVar(&ef.detectLangs, "detect-langs", nil, "only these languages (js,jsx,ts,tsx)")
	f.BoolVar(&ef.excludeTypical, "exclude-typical", false, "skip vendor, node_modules, dist, build and *.min.* files")
	f.BoolVar(&ef.templateText, "template-text", false, "report comment-like text inside template literals")
	f.BoolVar(&ef.withText, "with-text", false, "include comment text")
	f.BoolVar(&ef.noGit, "no-git", false, "walk the directory instead of asking git for files")
	f.IntVarP(&ef.jobs, "jobs", "j", 0, "parallel workers (default: number of CPUs)")
	f.IntVar(&ef.maxFileBytes, "max-file-bytes", 0, "skip files larger than this (0 = no limit)")
	f.StringVar(&ef.repo, "repo", ".", "repository root")
	f.BoolVar(&ef.withLinks, "with-links", false, "add permalinks to the hosting service (needs a git remote)")
	f.StringVar(&ef.linkRemote, "link-remote", "origin", "git remote used for permalinks")
}

func (ef *engineFlags) layer(cmd *cobra.Command, dst *config.EngineConfig) {
	f := cmd.Flags()
	str := func(name string, v string, target **string) {
		if f.Changed(name) {
			*target = &v
		}
	}
	list := func(name string, v []string, target **[]string) {
		if f.Changed(name) {
			copied := append([]string(nil), v...)
			*target = &copied
		}
	}
	flag := func(name string, v bool, target **bool) {
		if f.Changed(name) {
			*target = &v
		}
	}
	num := func(name string, v int, target **int) {
		if f.Changed(name) {
			*target = &v
		}
	}
	str("comment-types", ef.commentTypes, &dst.CommentTypes)
	list("path", ef.paths, &dst.Paths)
	list("exclude", ef.excludes, &dst.Excludes)
	list("path-regex", ef.pathRegex, &dst.PathRegex)
	list("detect-langs", ef.detectLangs, &dst.DetectLangs)
	flag("exclude-typical", ef.excludeTypical, &dst.ExcludeTypical)
	flag("template-text", ef.templateText, &dst.TemplateText)
	flag("with-text", ef.withText, &dst.WithText)
	flag("no-git", ef.noGit, &dst.NoGit)
	num("jobs", ef.jobs, &dst.Jobs)
	num("max-file-bytes", ef.maxFileBytes, &dst.MaxFileBytes)
	str("repo", ef.repo, &dst.Repo)
	flag("with-links", ef.withLinks, &dst.WithLinks)
	str("link-remote", ef.linkRemote, &dst.LinkRemote)
}

type settings struct {
	opts   engine.Options
	engine config.EngineSettings
	ui     config.UISettings
}

// resolveSettings merges defaults < config file < environment < flags.
func resolveSettings(ro *rootOptions, flags config.Config) (settings, error) {
	repo := "."
	if flags.Engine.Repo != nil {
		repo = *flags.Engine.Repo
	} else if v := ro.getenv("JSCOMMENTS_REPO"); v != "" {
		repo = v
	}
	explicit := ro.configPath
	if explicit == "" {
		explicit = ro.getenv("JSCOMMENTS_CONFIG")
	}
	path, where, err := config.Find(repo, explicit, ro.getenv("XDG_CONFIG_HOME"), ro.getenv("HOME"))
	if err != nil {
		return settings{}, err
	}
	var fileCfg config.Config
	if path != "" {
		fileCfg, err = config.Load(path)
		if err != nil {
			return settings{}, fmt.Errorf("load %s: %w", path, err)
		}
		ro.log().Debug("loaded config", "path", path, "source", where)
	}
	envCfg, err := config.FromEnv(ro.getenv)
	if err != nil {
		return settings{}, err
	}

	defaults := opts.Defaults(".")
	es := config.MergeEngine(config.EngineSettingsFromOptions(defaults), fileCfg.Engine, envCfg.Engine, flags.Engine)
	ui, err := config.NormalizeUI(config.MergeUI(config.DefaultUISettings(), fileCfg.UI, envCfg.UI, flags.UI))
	if err != nil {
		return settings{}, err
	}
	if ro.logLevel == "" && fileCfg.Engine.LogLevel != nil {
		level, err := config.ParseLogLevel(es.LogLevel)
		if err != nil {
			return settings{}, err
		}
		ro.level.Set(level)
	}

	o := defaults
	es.ApplyToOptions(&o)
	if o.Jobs == 0 {
		o.Jobs = defaults.Jobs
	}
	if err := opts.NormalizeAndValidate(&o); err != nil {
		return settings{}, err
	}
	o.Logger = ro.log()
	return settings{opts: o, engine: es, ui: ui}, nil
}

func (ro *rootOptions) log() *slog.Logger {
	if ro.logger == nil {
		return slog.Default()
	}
	return ro.logger
}
