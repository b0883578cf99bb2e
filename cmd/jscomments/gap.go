package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phyten/jscomments/internal/detect"
	"github.com/phyten/jscomments/internal/model"
	"github.com/phyten/jscomments/internal/scan"
)

type gapReport struct {
	File             string          `json:"file"`
	Language         string          `json:"language"`
	PreviousTokenEnd int             `json:"previous_token_end"`
	NextTokenStart   int             `json:"next_token_start"`
	Comments         []model.Comment `json:"comments"`
}

func newGapCommand(ro *rootOptions) *cobra.Command {
	var (
		from         int
		to           int
		lang         string
		commentTypes string
		templateText bool
	)
	cmd := &cobra.Command{
		Use:   "gap FILE",
		Short: "Report the comments between two byte offsets of one file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			data, err := readSource(cmd, name)
			if err != nil {
				return err
			}
			info, err := languageOf(name, lang, data)
			if err != nil {
				return err
			}
			types, err := scan.ParseCommentTypes(commentTypes)
			if err != nil {
				return err
			}
			src := string(data)
			if to < 0 {
				to = len(src)
			}
			if from < 0 || from > to || to > len(src) {
				return fmt.Errorf("offsets out of range: need 0 <= --from (%d) <= --to (%d) <= %d", from, to, len(src))
			}

			found := scan.Comments(src, from, to, scan.Options{CommentTypes: types, DisableJSX: !info.JSX, TemplateText: templateText})
			report := gapReport{File: name, Language: info.Name, PreviousTokenEnd: from, NextTokenStart: to, Comments: make([]model.Comment, 0, len(found))}
			for _, c := range found {
				report.Comments = append(report.Comments, model.FromScan(name, info.Name, src, c, true))
			}
			ro.log().Debug("scanned gap", "file", name, "from", from, "to", to, "comments", len(found))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	f := cmd.Flags()
	f.IntVar(&from, "from", 0, "end offset of the previous token")
	f.IntVar(&to, "to", -1, "start offset of the next token (default: end of file)")
	f.StringVar(&lang, "lang", "", "language (js, jsx, ts, tsx); detected from the file name by default")
	f.StringVarP(&commentTypes, "comment-types", "t", "all", "all|singleline|multiline|html|jsdoc")
	f.BoolVar(&templateText, "template-text", false, "report comment-like text inside template literals")
	return cmd
}

func readSource(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

// languageOf picks the language from --lang, then the file name or hashbang.
// Stdin defaults to JavaScript.
func languageOf(name, lang string, data []byte) (detect.Info, error) {
	if lang != "" {
		info := detect.ForLanguage(lang)
		if !info.Known() {
			return info, fmt.Errorf("unknown language: %s", lang)
		}
		return info, nil
	}
	if name == "-" {
		return detect.ForLanguage("javascript"), nil
	}
	info := detect.FromPathAndContent(name, data)
	if !info.Known() {
		return info, fmt.Errorf("cannot detect the language of %s; use --lang", name)
	}
	return info, nil
}
