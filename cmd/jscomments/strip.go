package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phyten/jscomments/internal/scan"
	"github.com/phyten/jscomments/internal/strip"
)

func newStripCommand(ro *rootOptions) *cobra.Command {
	var (
		lang         string
		commentTypes string
		keepHashbang bool
		verify       bool
		write        bool
	)
	cmd := &cobra.Command{
		Use:   "strip FILE",
		Short: "Print a file with its comments removed (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if write && name == "-" {
				return errors.New("--write needs a file")
			}
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
			res := strip.Strip(src, strip.Options{CommentTypes: types, DisableJSX: !info.JSX, KeepHashbang: keepHashbang})
			if verify {
				err := strip.Verify(name, src, res.Source)
				switch {
				case errors.Is(err, strip.ErrUnverifiable):
					ro.log().Warn("verification skipped", "file", name, "reason", err)
				case err != nil:
					return fmt.Errorf("%s: %w", name, err)
				}
			}
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), res.Source)
				return err
			}
			st, err := os.Stat(name)
			if err != nil {
				return err
			}
			if err := os.WriteFile(name, []byte(res.Source), st.Mode().Perm()); err != nil {
				return err
			}
			ro.log().Info("stripped comments", "file", name, "removed", len(res.Removed))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&lang, "lang", "", "language (js, jsx, ts, tsx); detected from the file name by default")
	f.StringVarP(&commentTypes, "comment-types", "t", "all", "all|singleline|multiline|html|jsdoc")
	f.BoolVar(&keepHashbang, "keep-hashbang", true, "keep a leading #! line")
	f.BoolVar(&verify, "verify", false, "check with a JavaScript parser that the result still compiles")
	f.BoolVarP(&write, "write", "w", false, "rewrite the file in place")
	return cmd
}
