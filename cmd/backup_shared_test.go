package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func Test_progressStep(t *testing.T) {
	cases := []struct{ total, want int }{
		{0, 1000},
		{10, 1},
		{200, 10},
		{1_000_000, 1000},
	}
	for _, c := range cases {
		if got := progressStep(c.total); got != c.want {
			t.Fatalf("progressStep(%d) = %d, want %d", c.total, got, c.want)
		}
	}
}

func Test_gzipByName(t *testing.T) {
	cases := []struct {
		path    string
		enabled bool
		want    bool
	}{
		{"backup.jsonl", false, false},
		{"backup.jsonl.GZ", false, true},
		{"-", false, false},
		{"-", true, true},
	}
	for _, c := range cases {
		if got := gzipByName(c.path, c.enabled); got != c.want {
			t.Fatalf("gzipByName(%q, %v) = %v", c.path, c.enabled, got)
		}
	}
}

func Test_backupFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "backup.jsonl.gz")

	w, closeW, err := openBackupWriter(io.Discard, path, true)
	if err != nil {
		t.Fatalf("openBackupWriter: %v", err)
	}
	if _, err := io.WriteString(w, "{\"table\":\"lessons\"}\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := closeW(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r, closeR, err := openBackupReader(nil, path, true)
	if err != nil {
		t.Fatalf("openBackupReader: %v", err)
	}
	defer closeR()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "{\"table\":\"lessons\"}\n" {
		t.Fatalf("unexpected content %q", data)
	}
}

func Test_cliProgress(t *testing.T) {
	var out bytes.Buffer
	p := newCLIProgress(&out, "exporting")
	p.StartTable("lessons", 3)
	p.Increment("lessons", 2)
	p.Increment("lessons", 1)
	p.FinishTable("lessons")

	got := out.String()
	for _, want := range []string{"exporting lessons (3 rows)", "lessons: 3/3", "done lessons: 3 rows"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in output:\n%s", want, got)
		}
	}
}
