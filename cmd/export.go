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
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/lingoguru/internal/app"
	"github.com/eslsoft/lingoguru/internal/usecase/backup"
)

const (
	exportOutputKey = "backup.export.output"
	exportGzipKey   = "backup.export.gzip"
	exportFilterKey = "backup.export.filter"
	exportBatchKey  = "backup.export.batch_size"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export lessons as an NDJSON backup",
	Long: `Export lessons from the sqlite3 or postgres store as NDJSON, one lesson per line.
Use --filter to export a subset, for example --filter "origin == 'ai'".`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		store, cleanup, err := app.InitializeStore()
		if err != nil {
			return fmt.Errorf("open lesson store: %w", err)
		}
		defer cleanup()

		outputPath := viper.GetString(exportOutputKey)
		if outputPath == "" {
			outputPath = defaultExportFilename(viper.GetBool(exportGzipKey))
		}
		gz := gzipByName(outputPath, viper.GetBool(exportGzipKey))

		writer, closeFn, err := openBackupWriter(cmd.OutOrStdout(), outputPath, gz)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closeFn(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		service := backup.NewService(store.Repo, store.Logger, backup.WithBatchSize(viper.GetInt(exportBatchKey)))
		n, err := service.Export(ctx, writer,
			backup.WithProgressReporter(newCLIProgress(cmd.ErrOrStderr(), "exporting")),
			backup.WithFilter(viper.GetString(exportFilterKey)),
		)
		if err != nil {
			return fmt.Errorf("export backup: %w", err)
		}

		if outputPath == "-" {
			cmd.PrintErrf("exported %d lessons to stdout\n", n)
		} else {
			cmd.PrintErrf("exported %d lessons to %s\n", n, outputPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "backup file path, - for stdout")
	exportCmd.Flags().Bool("gzip", false, "gzip the output")
	exportCmd.Flags().String("filter", "", "only export lessons matching this filter")
	exportCmd.Flags().Int("batch-size", 0, "lessons read per page (default 512)")

	bindFlagToViper(exportOutputKey, exportCmd.Flags().Lookup("output"))
	bindFlagToViper(exportGzipKey, exportCmd.Flags().Lookup("gzip"))
	bindFlagToViper(exportFilterKey, exportCmd.Flags().Lookup("filter"))
	bindFlagToViper(exportBatchKey, exportCmd.Flags().Lookup("batch-size"))
}

func defaultExportFilename(gzipEnabled bool) string {
	ts := time.Now().UTC().Format("20060102-150405")
	filename := fmt.Sprintf("lingoguru-backup-%s.jsonl", ts)
	if gzipEnabled {
		filename += ".gz"
	}
	return filename
}
