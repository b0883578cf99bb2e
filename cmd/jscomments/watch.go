package main

import (
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/phyten/jscomments/internal/config"
	"github.com/phyten/jscomments/internal/engine"
	"github.com/phyten/jscomments/internal/output"
	"github.com/phyten/jscomments/internal/watch"
)

func newWatchCommand(ro *rootOptions) *cobra.Command {
	var (
		ef       engineFlags
		debounce time.Duration
		initial  bool
	)
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Print NDJSON comment records for JS/TS/JSX files as they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var layer config.Config
			ef.layer(cmd, &layer.Engine)
			if len(args) == 1 {
				layer.Engine.Repo = &args[0]
			}
			s, err := resolveSettings(ro, layer)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var mu sync.Mutex
			emit := func(res *engine.Result) {
				mu.Lock()
				defer mu.Unlock()
				if err := output.WriteNDJSON(cmd.OutOrStdout(), res.Items); err != nil {
					ro.log().Error("write output", "err", err)
				}
				reportErrors(cmd.ErrOrStderr(), res)
			}

			if initial {
				res, err := engine.Run(ctx, s.opts)
				if err != nil {
					return err
				}
				emit(res)
			}

			w, err := watch.New(s.opts.RepoDir, watch.Options{
				Debounce:       debounce,
				ExcludeTypical: s.opts.ExcludeTypical,
				Logger:         ro.log(),
				OnChange: func(paths []string) {
					res, err := engine.ScanFiles(ctx, s.opts, paths)
					if err != nil {
						if ctx.Err() == nil {
							ro.log().Error("rescan failed", "err", err)
						}
						return
					}
					ro.log().Debug("rescanned", "changed", len(paths), "comments", res.Total)
					emit(res)
				},
			})
			if err != nil {
				return err
			}
			defer w.Close()
			ro.log().Info("watching", "dir", s.opts.RepoDir)
			return w.Run(ctx)
		},
	}
	ef.bind(cmd)
	f := cmd.Flags()
	f.DurationVar(&debounce, "debounce", 200*time.Millisecond, "wait this long for changes to settle")
	f.BoolVar(&initial, "initial", false, "scan everything once before watching")
	return cmd
}
