/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eslsoft/lingoguru/internal/app"
	"github.com/eslsoft/lingoguru/internal/content"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Connect API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, cleanup, err := app.Initialize()
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		defer cleanup()

		cfg := container.Config
		logger := container.Logger

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Content.Seed {
			n, err := container.Lessons.SeedLessons(ctx, content.Lessons())
			if err != nil {
				return fmt.Errorf("seed lessons: %w", err)
			}
			logger.Infof("seeded %d lessons into %s store", n, cfg.DatabaseDriver())
		}
		if cfg.Gemini.APIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set, tutor features will answer with fallbacks")
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(container.Server.Start)
		g.Go(func() error {
			return container.Practice.RunSweeper(gctx, cfg.Session.SweepInterval)
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("stopping")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			err := container.Server.Shutdown(shutdownCtx)
			container.Narrator.Wait()
			return err
		})
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "listen host (default from SERVER_HOST)")
	serveCmd.Flags().Int("port", 0, "listen port (default from SERVER_HTTP_PORT)")
	serveCmd.Flags().Bool("seed", true, "seed the built-in lessons before serving")

	bindFlagToViper("server.host", serveCmd.Flags().Lookup("host"))
	bindFlagToViper("server.http_port", serveCmd.Flags().Lookup("port"))
	bindFlagToViper("content.seed", serveCmd.Flags().Lookup("seed"))
}
