package detect

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Info describes a JavaScript family source file.
type Info struct {
	Name string
	// JSX reports whether `<` may open an element in this file.
	JSX bool
}

// Known reports whether the file belongs to the JavaScript family.
func (i Info) Known() bool { return i.Name != "" }

func FromPathAndContent(p string, data []byte) Info {
	name := detectByPath(p)
	if name == "" {
		name = detectByShebang(data)
	}
	if name == "" {
		return Info{}
	}
	return Info{Name: name, JSX: jsxLanguages[name]}
}

// ForLanguage returns the Info of a language name or alias, or the zero Info
// when the name is not a JavaScript family language.
func ForLanguage(name string) Info {
	n := NormalizeLangName(name)
	jsx, ok := jsxLanguages[n]
	if !ok {
		return Info{}
	}
	return Info{Name: n, JSX: jsx}
}

func detectByPath(p string) string {
	base := strings.ToLower(filepath.Base(p))
	if strings.HasSuffix(base, ".d.ts") {
		return "typescript"
	}
	ext := filepath.Ext(base)
	if ext == "" {
		return ""
	}
	return extensionLanguages[ext]
}

func detectByShebang(data []byte) string {
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	fields := strings.Fields(strings.ToLower(string(data[2:end])))
	for _, f := range fields {
		if lang, ok := shebangLanguages[filepath.Base(f)]; ok {
			return lang
		}
	}
	return ""
}

func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

func MatchesLang(info Info, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	detected := NormalizeLangName(info.Name)
	if detected == "" {
		return false
	}
	for _, raw := range allow {
		if NormalizeLangName(raw) == detected {
			return true
		}
	}
	return false
}

func KnownLanguage(name string) bool {
	if name == "" {
		return false
	}
	_, ok := jsxLanguages[NormalizeLangName(name)]
	return ok
}

// IsSourcePath reports whether the path has a JavaScript family extension.
func IsSourcePath(p string) bool {
	return detectByPath(p) != ""
}

func CanonicalDetectLangs(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		norm := NormalizeLangName(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

var extensionLanguages = map[string]string{
	".js":  "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".jsx": "javascriptreact",
	".ts":  "typescript",
	".mts": "typescript",
	".cts": "typescript",
	".tsx": "typescriptreact",
}

// jsxLanguages lists every known language; the value says whether JSX is on.
// Plain TypeScript uses `<T>expr` for type assertions.
var jsxLanguages = map[string]bool{
	"javascript":      true,
	"javascriptreact": true,
	"typescript":      false,
	"typescriptreact": true,
}

var langAliases = map[string]string{
	"js":         "javascript",
	"mjs":        "javascript",
	"cjs":        "javascript",
	"node":       "javascript",
	"ecmascript": "javascript",
	"jsx":        "javascriptreact",
	"ts":         "typescript",
	"mts":        "typescript",
	"cts":        "typescript",
	"tsx":        "typescriptreact",
}

var shebangLanguages = map[string]string{
	"node":    "javascript",
	"nodejs":  "javascript",
	"deno":    "javascript",
	"bun":     "javascript",
	"ts-node": "typescript",
	"tsx":     "typescript",
}
