package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phyten/jscomments/internal/config"
	"github.com/phyten/jscomments/internal/engine"
	"github.com/phyten/jscomments/internal/engine/opts"
	"github.com/phyten/jscomments/internal/output"
	"github.com/phyten/jscomments/internal/progress"
	"github.com/phyten/jscomments/internal/termcolor"
)

func newScanCommand(ro *rootOptions) *cobra.Command {
	var (
		ef         engineFlags
		format     string
		color      string
		fields     string
		sortSpec   string
		truncate   int
		forceProg  bool
		noProgress bool
	)
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "List the comments of every JS/TS/JSX file in a repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			var layer config.Config
			ef.layer(cmd, &layer.Engine)
			if len(args) > 0 {
				paths := append(append([]string(nil), ef.paths...), args...)
				layer.Engine.Paths = &paths
			}
			f := cmd.Flags()
			if f.Changed("output") {
				layer.Engine.Output = &format
			}
			if f.Changed("color") {
				layer.Engine.Color = &color
			}
			if f.Changed("fields") {
				layer.UI.Fields = &fields
			}
			if f.Changed("sort") {
				layer.UI.Sort = &sortSpec
			}
			if f.Changed("truncate") {
				layer.UI.Truncate = &truncate
			}

			s, err := resolveSettings(ro, layer)
			if err != nil {
				return err
			}
			outFormat, err := opts.NormalizeOutput(s.engine.Output)
			if err != nil {
				return err
			}
			sel, err := output.ResolveFields(s.ui.Fields, s.opts.WithText)
			if err != nil {
				return err
			}
			if sel.NeedText {
				s.opts.WithText = true
			}
			if sel.NeedURL {
				s.opts.WithLinks = true
			}
			spec, err := output.ParseSortSpec(s.ui.Sort)
			if err != nil {
				return err
			}
			colors, err := termcolor.Resolve(s.engine.Color, stdoutFile(cmd), ro.environ())
			if err != nil {
				return err
			}
			if progress.ShouldShowProgress(forceProg, noProgress) {
				s.opts.ProgressObserver = progress.NewAutoObserver(cmd.ErrOrStderr())
			}

			res, err := engine.Run(cmd.Context(), s.opts)
			if err != nil {
				return err
			}
			output.ApplySort(res.Items, spec)
			err = output.Render(cmd.OutOrStdout(), res, output.RenderOptions{
				Format: outFormat,
				Fields: sel,
				Table:  output.TableOptions{Color: colors, Truncate: s.ui.Truncate},
			})
			if err != nil {
				return err
			}
			reportErrors(cmd.ErrOrStderr(), res)
			return nil
		},
	}
	ef.bind(cmd)
	f := cmd.Flags()
	f.StringVarP(&format, "output", "o", "table", "table|tsv|json|ndjson|csv|md")
	f.StringVar(&color, "color", "auto", "auto|always|never")
	f.StringVar(&fields, "fields", "", "columns, e.g. location,kind,lines,text")
	f.StringVar(&sortSpec, "sort", "", "sort keys, e.g. -lines,file")
	f.IntVar(&truncate, "truncate", 0, "truncate TEXT to N display columns in tables (0 = unlimited)")
	f.BoolVar(&forceProg, "progress", false, "show progress even when output is piped")
	f.BoolVar(&noProgress, "no-progress", false, "never show progress")
	return cmd
}

// reportErrors summarizes per-file failures on stderr.
func reportErrors(w io.Writer, res *engine.Result) {
	if res == nil || res.ErrorCount == 0 {
		return
	}
	fmt.Fprintf(w, "jscomments: %d error(s) while scanning\n", res.ErrorCount)
	for _, e := range res.Errors {
		file := e.File
		if file == "" {
			file = "(unknown file)"
		}
		stage := e.Stage
		if stage == "" {
			stage = "scan"
		}
		fmt.Fprintf(w, "  %s [%s] %s\n", file, stage, e.Message)
	}
}

func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}
