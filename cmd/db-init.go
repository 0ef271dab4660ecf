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

	"github.com/spf13/cobra"

	"github.com/eslsoft/lingoguru/internal/app"
	"github.com/eslsoft/lingoguru/internal/content"
)

// dbInitCmd creates the lessons table and seeds the built-in curriculum
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Create the lesson schema and seed the built-in lessons",
	Long:  "Create the lessons table in the configured sqlite3 or postgres database and upsert the built-in lessons. go-sqlite3 needs CGO_ENABLED=1. Use --schema-only to skip seeding.",
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaOnly, _ := cmd.Flags().GetBool("schema-only")

		// the schema is applied while opening the store
		store, cleanup, err := app.InitializeStore()
		if err != nil {
			return fmt.Errorf("init lesson store: %w", err)
		}
		defer cleanup()
		driver := store.Config.DatabaseDriver()
		if schemaOnly {
			cmd.Printf("schema ready (%s)\n", driver)
			return nil
		}

		n, err := store.Lessons.SeedLessons(cmd.Context(), content.Lessons())
		if err != nil {
			return fmt.Errorf("seed lessons: %w", err)
		}
		cmd.Printf("seeded %d lessons (%s)\n", n, driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().Bool("schema-only", false, "only create the schema, do not seed lessons")
}
