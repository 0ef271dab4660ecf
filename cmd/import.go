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
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/lingoguru/internal/app"
	"github.com/eslsoft/lingoguru/internal/usecase/backup"
)

const (
	importInputKey  = "backup.import.input"
	importGzipKey   = "backup.import.gzip"
	importDryRunKey = "backup.import.dry_run"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import lessons from an NDJSON backup",
	Long:  "Validate every lesson in the backup and upsert it into the sqlite3 or postgres store.",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		inputPath := viper.GetString(importInputKey)
		if inputPath == "" {
			return errors.New("specify the backup file with --input, or - for stdin")
		}

		store, cleanup, err := app.InitializeStore()
		if err != nil {
			return fmt.Errorf("open lesson store: %w", err)
		}
		defer cleanup()

		reader, closeFn, err := openBackupReader(cmd.InOrStdin(), inputPath, gzipByName(inputPath, viper.GetBool(importGzipKey)))
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closeFn(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		dryRun := viper.GetBool(importDryRunKey)
		service := backup.NewService(store.Repo, store.Logger)
		n, err := service.Import(ctx, reader,
			backup.WithImportProgress(newCLIProgress(cmd.ErrOrStderr(), "importing")),
			backup.WithDryRun(dryRun),
		)
		if err != nil {
			return fmt.Errorf("import backup after %d lessons: %w", n, err)
		}

		if dryRun {
			cmd.PrintErrf("validated %d lessons, nothing written\n", n)
		} else {
			cmd.PrintErrf("imported %d lessons\n", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("input", "i", "", "backup file path, - for stdin")
	importCmd.Flags().Bool("gzip", false, "input is gzip compressed")
	importCmd.Flags().Bool("dry-run", false, "validate the backup without writing")

	bindFlagToViper(importInputKey, importCmd.Flags().Lookup("input"))
	bindFlagToViper(importGzipKey, importCmd.Flags().Lookup("gzip"))
	bindFlagToViper(importDryRunKey, importCmd.Flags().Lookup("dry-run"))
}
