package config

import "strings"

// MergeEngine applies layers over base in order; later layers win.
func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	out.Paths = cloneStrings(base.Paths)
	out.Excludes = cloneStrings(base.Excludes)
	out.PathRegex = cloneStrings(base.PathRegex)
	out.DetectLangs = cloneStrings(base.DetectLangs)
	for _, layer := range layers {
		out.CommentTypes = pickTrimmed(out.CommentTypes, layer.CommentTypes)
		out.Paths = pickList(out.Paths, layer.Paths)
		out.Excludes = pickList(out.Excludes, layer.Excludes)
		out.PathRegex = pickList(out.PathRegex, layer.PathRegex)
		out.ExcludeTypical = pick(out.ExcludeTypical, layer.ExcludeTypical)
		out.DetectLangs = pickList(out.DetectLangs, layer.DetectLangs)
		out.TemplateText = pick(out.TemplateText, layer.TemplateText)
		out.WithText = pick(out.WithText, layer.WithText)
		out.Jobs = pick(out.Jobs, layer.Jobs)
		out.Repo = pickTrimmed(out.Repo, layer.Repo)
		out.NoGit = pick(out.NoGit, layer.NoGit)
		out.Output = pickTrimmed(out.Output, layer.Output)
		out.Color = pickTrimmed(out.Color, layer.Color)
		out.MaxFileBytes = pick(out.MaxFileBytes, layer.MaxFileBytes)
		out.LogLevel = pickTrimmed(out.LogLevel, layer.LogLevel)
		out.WithLinks = pick(out.WithLinks, layer.WithLinks)
		out.LinkRemote = pickTrimmed(out.LinkRemote, layer.LinkRemote)
		out.LinkScheme = pickTrimmed(out.LinkScheme, layer.LinkScheme)
	}
	if out.Output == "" {
		out.Output = "table"
	}
	if out.Color == "" {
		out.Color = "auto"
	}
	if out.LogLevel == "" {
		out.LogLevel = "info"
	}
	return out
}

func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.Fields = pickTrimmed(out.Fields, layer.Fields)
		out.Sort = pickTrimmed(out.Sort, layer.Sort)
		out.Truncate = pick(out.Truncate, layer.Truncate)
	}
	out.Fields = strings.TrimSpace(out.Fields)
	return out
}
