package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/phyten/jscomments/internal/config"
	"github.com/phyten/jscomments/internal/web"
)

var openBrowser = browser.OpenURL

func newServeCommand(ro *rootOptions) *cobra.Command {
	var (
		ef   engineFlags
		addr string
		open bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var layer config.Config
			ef.layer(cmd, &layer.Engine)
			s, err := resolveSettings(ro, layer)
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			url := "http://" + ln.Addr().String() + "/"
			repo, _ := filepath.Abs(s.opts.RepoDir)
			ro.log().Info("serving", "url", url, "repo", repo)

			srv := &http.Server{
				Handler:           (&web.Server{Defaults: s.opts, Logger: ro.log()}).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Serve(ln) }()
			if open {
				if err := openBrowser(url); err != nil {
					ro.log().Warn("cannot open browser", "url", url, "err", err)
				}
			}

			select {
			case <-cmd.Context().Done():
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}
	ef.bind(cmd)
	f := cmd.Flags()
	f.StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	f.BoolVar(&open, "open", false, "open the UI in a browser")
	return cmd
}
