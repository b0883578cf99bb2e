package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	engineopts "github.com/phyten/jscomments/internal/engine/opts"
)

// keyAliases maps accepted spellings to canonical keys. Keys are compared
// after lower-casing and turning "-" into "_".
var keyAliases = map[string]string{
	"comment_type":     "comment_types",
	"types":            "comment_types",
	"paths":            "path",
	"excludes":         "exclude",
	"path_regexes":     "path_regex",
	"detect_languages": "detect_langs",
	"max_bytes":        "max_file_bytes",
	"links":            "with_links",
}

type setter func(value any, key string) error

func engineSetters(dst *EngineConfig) map[string]setter {
	return map[string]setter{
		"comment_types":   setString(&dst.CommentTypes, true),
		"path":            setList(&dst.Paths),
		"exclude":         setList(&dst.Excludes),
		"path_regex":      setList(&dst.PathRegex),
		"detect_langs":    setList(&dst.DetectLangs),
		"exclude_typical": setBool(&dst.ExcludeTypical),
		"template_text":   setBool(&dst.TemplateText),
		"with_text":       setBool(&dst.WithText),
		"max_file_bytes":  setInt(&dst.MaxFileBytes),
		"jobs":            setInt(&dst.Jobs),
		"repo":            setString(&dst.Repo, false),
		"no_git":          setBool(&dst.NoGit),
		"output":          setString(&dst.Output, true),
		"color":           setString(&dst.Color, true),
		"log_level":       setString(&dst.LogLevel, true),
		"with_links":      setBool(&dst.WithLinks),
		"link_remote":     setString(&dst.LinkRemote, true),
		"link_scheme":     setString(&dst.LinkScheme, true),
	}
}

func uiSetters(dst *UIConfig) map[string]setter {
	return map[string]setter{
		"fields":   setString(&dst.Fields, false),
		"sort":     setString(&dst.Sort, false),
		"truncate": setInt(&dst.Truncate),
	}
}

// Load reads one configuration file. The format is chosen by extension.
// Keys may appear at the top level or under "engine" / "ui"; unknown keys
// are errors.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var raw map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := decodeConfigMap(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfigMap(raw map[string]any, cfg *Config) error {
	engine := engineSetters(&cfg.Engine)
	ui := uiSetters(&cfg.UI)

	sections := []struct {
		name    string
		setters map[string]setter
	}{{"engine", engine}, {"ui", ui}}
	for _, sec := range sections {
		block, ok := raw[sec.name]
		if !ok {
			continue
		}
		sub, err := toStringKeyMap(block)
		if err != nil {
			return fmt.Errorf("%s: %w", sec.name, err)
		}
		for key, value := range sub {
			set, ok := sec.setters[canonicalKey(key)]
			if !ok {
				return fmt.Errorf("unknown %s key: %s", sec.name, key)
			}
			if err := set(value, key); err != nil {
				return fmt.Errorf("%s: %w", sec.name, err)
			}
		}
	}

	for key, value := range raw {
		name := canonicalKey(key)
		if name == "engine" || name == "ui" {
			continue
		}
		set, ok := engine[name]
		if !ok {
			set, ok = ui[name]
		}
		if !ok {
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := set(value, key); err != nil {
			return err
		}
	}
	return nil
}

func canonicalKey(key string) string {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
	if alias, ok := keyAliases[norm]; ok {
		return alias
	}
	return norm
}

func setString(target **string, trim bool) setter {
	return func(value any, key string) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string for %s, got %T", key, value)
		}
		if trim {
			s = strings.TrimSpace(s)
		}
		*target = &s
		return nil
	}
}

func setBool(target **bool) setter {
	return func(value any, key string) error {
		var b bool
		switch v := value.(type) {
		case bool:
			b = v
		case string:
			parsed, err := engineopts.ParseBool(v, key)
			if err != nil {
				return err
			}
			b = parsed
		default:
			return fmt.Errorf("expected bool for %s, got %T", key, value)
		}
		*target = &b
		return nil
	}
}

func setInt(target **int) setter {
	return func(value any, key string) error {
		n, err := toInt(value, key)
		if err != nil {
			return err
		}
		*target = &n
		return nil
	}
}

// toInt accepts the integer shapes the three decoders produce (int from
// yaml, int64 from toml, float64 from json) and numeric strings.
func toInt(value any, key string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0, fmt.Errorf("integer out of range for %s: %d", key, v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("expected integer for %s, got %v", key, v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", key, v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("expected integer for %s, got %T", key, value)
}

// setList accepts a comma separated string or a list. List entries are
// taken whole, so a path_regex may contain commas.
func setList(target **[]string) setter {
	return func(value any, key string) error {
		list := []string{}
		switch v := value.(type) {
		case string:
			list = append(list, engineopts.SplitMulti([]string{v})...)
		case []any:
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("expected string in %s, got %T", key, item)
				}
				if s = strings.TrimSpace(s); s != "" {
					list = append(list, s)
				}
			}
		default:
			return fmt.Errorf("expected string or list for %s, got %T", key, value)
		}
		*target = &list
		return nil
	}
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected map, got %T", v)
}
