package web

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"github.com/phyten/jscomments/internal/scan"
	"github.com/phyten/jscomments/internal/termcolor"
)

const (
	stylesPath = "/assets/styles.css"
	kindsPath  = "/assets/kinds.css"
	scriptPath = "/assets/ui.js"
)

var (
	//go:embed templates/index.html
	indexHTML string
	indexOnce sync.Once
	indexTmpl *template.Template

	//go:embed assets/styles.css
	stylesCSS string

	//go:embed assets/ui.js
	scriptJS string

	kindsOnce sync.Once
	kindsCSS  string
)

type indexData struct {
	StylesPath string
	KindsPath  string
	ScriptPath string
	Kinds      []string
}

// Register attaches handlers for the web UI assets to the provided mux.
func Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", indexHandler)
	mux.HandleFunc("GET "+stylesPath, stylesHandler)
	mux.HandleFunc("GET "+kindsPath, kindsHandler)
	mux.HandleFunc("GET "+scriptPath, scriptHandler)
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	tmpl := loadTemplate()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'self'; script-src 'self'; img-src 'self'; connect-src 'self'; form-action 'self'; base-uri 'none'")
	data := indexData{StylesPath: stylesPath, KindsPath: kindsPath, ScriptPath: scriptPath, Kinds: kindNames()}
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
	}
}

func stylesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(stylesCSS))
}

// kindsHandler serves the per-kind badge colors, shared with the terminal
// palette. Light is the default; dark applies under prefers-color-scheme.
func kindsHandler(w http.ResponseWriter, r *http.Request) {
	kindsOnce.Do(func() { kindsCSS = buildKindsCSS() })
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(kindsCSS))
}

func scriptHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(scriptJS))
}

func loadTemplate() *template.Template {
	indexOnce.Do(func() {
		indexTmpl = template.Must(template.New("index").Parse(indexHTML))
	})
	return indexTmpl
}

func allKinds() []scan.Kind {
	return []scan.Kind{
		scan.SingleLine, scan.Block, scan.JSDoc, scan.HTML, scan.Hashbang, scan.TemplateEmbedded,
		scan.UnterminatedString, scan.UnterminatedRegex, scan.UnterminatedTemplate,
	}
}

func kindNames() []string {
	kinds := allKinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}

func buildKindsCSS() string {
	var b strings.Builder
	rules := func(scheme termcolor.Scheme) {
		for _, k := range allKinds() {
			rgb, ok := termcolor.KindRGB(k, scheme)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, ".kind-%s{color:%s}\n", k, rgb.Hex())
		}
	}
	rules(termcolor.SchemeLight)
	b.WriteString("@media (prefers-color-scheme: dark){\n")
	rules(termcolor.SchemeDark)
	b.WriteString("}\n")
	return b.String()
}
