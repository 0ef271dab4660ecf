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
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// gzipByName reports whether a path ending in .gz should be treated as gzip.
func gzipByName(path string, enabled bool) bool {
	if enabled || path == "-" {
		return enabled
	}
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// openBackupWriter opens path for writing ("-" is stdout) and layers gzip on
// top when asked. The returned close func flushes and closes everything.
func openBackupWriter(stdout io.Writer, path string, gz bool) (io.Writer, func() error, error) {
	var (
		writer   = stdout
		closeFns []func() error
	)
	if path != "-" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output dir: %w", err)
		}
		file, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("create backup file: %w", err)
		}
		writer = file
		closeFns = append(closeFns, file.Close)
	}
	if gz {
		gzw := gzip.NewWriter(writer)
		writer = gzw
		closeFns = append([]func() error{gzw.Close}, closeFns...)
	}
	return writer, closeAll(closeFns), nil
}

// openBackupReader is the reading counterpart of openBackupWriter.
func openBackupReader(stdin io.Reader, path string, gz bool) (io.Reader, func() error, error) {
	var (
		reader  = stdin
		closers []func() error
	)
	if path != "-" {
		file, err := os.Open(filepath.Clean(path))
		if err != nil {
			return nil, nil, fmt.Errorf("open backup file: %w", err)
		}
		reader = file
		closers = append(closers, file.Close)
	}
	if gz {
		gzr, err := gzip.NewReader(reader)
		if err != nil {
			_ = closeAll(closers)()
			return nil, nil, fmt.Errorf("open gzip reader: %w", err)
		}
		reader = gzr
		closers = append([]func() error{gzr.Close}, closers...)
	}
	return reader, closeAll(closers), nil
}

func closeAll(fns []func() error) func() error {
	return func() error {
		var first error
		for _, fn := range fns {
			if err := fn(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
}

// cliProgress prints table progress to the terminal, roughly every 5%.
type cliProgress struct {
	out         io.Writer
	verb        string
	totals      map[string]int
	counts      map[string]int
	lastPrinted map[string]int
	steps       map[string]int
}

func newCLIProgress(out io.Writer, verb string) *cliProgress {
	return &cliProgress{
		out:         out,
		verb:        verb,
		totals:      make(map[string]int),
		counts:      make(map[string]int),
		lastPrinted: make(map[string]int),
		steps:       make(map[string]int),
	}
}

func (p *cliProgress) StartTable(table string, total int) {
	if total < 0 {
		total = 0
	}
	p.totals[table] = total
	p.counts[table] = 0
	p.lastPrinted[table] = 0
	p.steps[table] = progressStep(total)
	if total > 0 {
		fmt.Fprintf(p.out, "%s %s (%d rows)\n", p.verb, table, total)
	} else {
		fmt.Fprintf(p.out, "%s %s\n", p.verb, table)
	}
}

func (p *cliProgress) Increment(table string, delta int) {
	if delta <= 0 {
		return
	}
	current := p.counts[table] + delta
	p.counts[table] = current
	step := p.steps[table]
	if step <= 0 {
		step = 1
	}
	last := p.lastPrinted[table]
	if current == p.totals[table] || last == 0 || current-last >= step {
		p.printProgress(table, current, p.totals[table])
		p.lastPrinted[table] = current
	}
}

func (p *cliProgress) FinishTable(table string) {
	current := p.counts[table]
	total := p.totals[table]
	if current != p.lastPrinted[table] {
		p.printProgress(table, current, total)
	}
	fmt.Fprintf(p.out, "done %s: %d rows\n", table, current)
	delete(p.counts, table)
	delete(p.totals, table)
	delete(p.lastPrinted, table)
	delete(p.steps, table)
}

func (p *cliProgress) printProgress(table string, current, total int) {
	if total > 0 {
		fmt.Fprintf(p.out, "%s: %d/%d\n", table, current, total)
	} else {
		fmt.Fprintf(p.out, "%s: %d rows\n", table, current)
	}
}

func progressStep(total int) int {
	if total <= 0 {
		return 1000
	}
	step := total / 20
	if step < 1 {
		step = 1
	}
	if step > 1000 {
		step = 1000
	}
	return step
}
