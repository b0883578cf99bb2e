package termcolor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

var modeNames = map[ColorMode]string{ModeAuto: "auto", ModeAlways: "always", ModeNever: "never"}

func (m ColorMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "auto"
}

// ParseMode accepts auto, always (force) and never (none), case-insensitively.
func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always", "force":
		return ModeAlways, nil
	case "never", "none":
		return ModeNever, nil
	}
	return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
}

type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

// Settings is everything a renderer needs to decide how to color output.
type Settings struct {
	Enabled bool
	Profile Profile
	Scheme  Scheme
}

// Resolve turns a --color value into Settings for stdout. environ is in
// os.Environ form.
func Resolve(mode string, stdout *os.File, environ []string) (Settings, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return Settings{}, err
	}
	env := EnvMap(environ)
	if m == ModeAuto {
		m = DetectMode(stdout, env)
	}
	return Settings{
		Enabled: Enabled(m, stdout),
		Profile: DetectProfile(env),
		Scheme:  DetectScheme(env),
	}, nil
}

// EnvMap splits KEY=VALUE entries. Entries without "=" map to "".
func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if k, v, _ := strings.Cut(entry, "="); k != "" {
			env[k] = v
		}
	}
	return env
}

// envRules are checked in order by DetectMode; the first match decides.
var envRules = []struct {
	key  string
	test func(string) bool
	mode ColorMode
}{
	{"TERM", func(v string) bool { return strings.EqualFold(v, "dumb") }, ModeNever},
	{"NO_COLOR", func(v string) bool { return v != "" }, ModeNever},
	{"CLICOLOR", func(v string) bool { return v == "0" }, ModeNever},
	{"CLICOLOR_FORCE", forceColor, ModeAlways},
	{"FORCE_COLOR", forceColor, ModeAlways},
}

// DetectMode resolves auto mode: TERM=dumb, NO_COLOR and CLICOLOR=0 disable
// colors, CLICOLOR_FORCE or FORCE_COLOR (non-zero) force them, and otherwise
// colors follow whether stdout is a terminal.
func DetectMode(stdout *os.File, env map[string]string) ColorMode {
	if stdout == nil {
		return ModeNever
	}
	for _, r := range envRules {
		if r.test(strings.TrimSpace(env[r.key])) {
			return r.mode
		}
	}
	if isTerminal(stdout) {
		return ModeAlways
	}
	return ModeNever
}

// Enabled reports whether colors should be emitted for mode. ModeAuto falls
// back to the TTY check on stdout.
func Enabled(mode ColorMode, stdout *os.File) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	}
	return isTerminal(stdout)
}

// DetectProfile picks the richest profile COLORTERM or TERM advertises.
func DetectProfile(env map[string]string) Profile {
	colorterm := strings.ToLower(env["COLORTERM"])
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") || strings.Contains(colorterm, "24-bit") {
		return ProfileTrueColor
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

func forceColor(v string) bool {
	return v != "" && v != "0"
}
