package backup

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	adapterrepo "github.com/eslsoft/lingoguru/internal/adapter/repository"
	"github.com/eslsoft/lingoguru/internal/content"
	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type countingProgress struct {
	started, finished bool
	total, count      int
}

func (p *countingProgress) StartTable(_ string, total int) { p.started, p.total = true, total }
func (p *countingProgress) Increment(_ string, delta int)  { p.count += delta }
func (p *countingProgress) FinishTable(string)             { p.finished = true }

func seededRepo(t *testing.T) repository.LessonRepository {
	t.Helper()
	repo := adapterrepo.NewMemoryLessonRepository()
	for _, l := range content.Lessons() {
		if err := repo.Upsert(context.Background(), l); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return repo
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := NewService(seededRepo(t), quietLogger(), WithBatchSize(2))

	var buf bytes.Buffer
	progress := &countingProgress{}
	n, err := src.Export(ctx, &buf, WithProgressReporter(progress))
	if err != nil {
		t.Fatalf("Export() err = %v", err)
	}
	if n != 3 || strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("expected 3 lines, got n=%d:\n%s", n, buf.String())
	}
	if !progress.started || !progress.finished || progress.total != 3 || progress.count != 3 {
		t.Fatalf("unexpected progress: %+v", progress)
	}

	dst := adapterrepo.NewMemoryLessonRepository()
	imported, err := NewService(dst, quietLogger()).Import(ctx, &buf)
	if err != nil {
		t.Fatalf("Import() err = %v", err)
	}
	if imported != 3 {
		t.Fatalf("expected 3 imported, got %d", imported)
	}
	got, err := dst.GetByID(ctx, "2")
	if err != nil {
		t.Fatalf("GetByID() err = %v", err)
	}
	if got.Dialogue.StartNodeID == "" || len(got.Quiz) == 0 {
		t.Fatalf("lesson lost content in round trip: %+v", got)
	}
}

func TestExportFilter(t *testing.T) {
	svc := NewService(seededRepo(t), quietLogger())
	var buf bytes.Buffer
	n, err := svc.Export(context.Background(), &buf, WithFilter("origin == 'ai'"))
	if err != nil || n != 0 || buf.Len() != 0 {
		t.Fatalf("Export(ai) = %d, %v", n, err)
	}
	if _, err := svc.Export(context.Background(), &buf, WithFilter("color == 'red'")); !errors.Is(err, entity.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestImportRejectsBadLines(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		input string
	}{
		{name: "malformed json", input: "{not json}\n"},
		{name: "unknown table", input: `{"table":"users","data":{}}` + "\n"},
		{name: "invalid lesson", input: `{"table":"lessons","data":{"id":"x","title":{"english":"X"}}}` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := adapterrepo.NewMemoryLessonRepository()
			n, err := NewService(repo, quietLogger()).Import(ctx, strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), "line 1") {
				t.Fatalf("expected line error, got %v", err)
			}
			if n != 0 {
				t.Fatalf("expected nothing imported, got %d", n)
			}
		})
	}
}

func TestImportDryRun(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	if _, err := NewService(seededRepo(t), quietLogger()).Export(ctx, &buf); err != nil {
		t.Fatalf("Export() err = %v", err)
	}

	dst := adapterrepo.NewMemoryLessonRepository()
	n, err := NewService(dst, quietLogger()).Import(ctx, &buf, WithDryRun(true))
	if err != nil || n != 3 {
		t.Fatalf("Import(dry) = %d, %v", n, err)
	}
	if _, total, _ := dst.List(ctx, nil, repository.Pagination{}); total != 0 {
		t.Fatalf("dry run wrote %d lessons", total)
	}
}
