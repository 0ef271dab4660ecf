// Package backup streams lessons to and from NDJSON backups.
package backup

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
	"github.com/eslsoft/lingoguru/pkg/filterexpr"
)

const (
	// LessonsTable names lesson records in a backup.
	LessonsTable     = "lessons"
	defaultBatchSize = 512
	maxLineBytes     = 16 << 20
)

// ProgressReporter is told how far an export or import got.
type ProgressReporter interface {
	StartTable(table string, total int)
	Increment(table string, delta int)
	FinishTable(table string)
}

type noopProgress struct{}

func (noopProgress) StartTable(string, int) {}
func (noopProgress) Increment(string, int)  {}
func (noopProgress) FinishTable(string)     {}

// record is one NDJSON line.
type record struct {
	Table string          `json:"table"`
	Data  json.RawMessage `json:"data"`
}

type Service struct {
	repo      repository.LessonRepository
	log       logrus.FieldLogger
	batchSize int
	clock     func() time.Time
}

type Option func(*Service)

// WithBatchSize sets how many lessons are read per page; n <= 0 keeps the default.
func WithBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

func NewService(repo repository.LessonRepository, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		log:       log.WithField("service", "backup"),
		batchSize: defaultBatchSize,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type exportOptions struct {
	progress ProgressReporter
	filter   string
}

type ExportOption func(*exportOptions)

func WithProgressReporter(p ProgressReporter) ExportOption {
	return func(o *exportOptions) {
		if p != nil {
			o.progress = p
		}
	}
}

// WithFilter limits the export to lessons matching a filter expression, for
// example origin == 'ai'.
func WithFilter(filter string) ExportOption {
	return func(o *exportOptions) { o.filter = filter }
}

// Export writes every selected lesson as one NDJSON line and returns the count.
func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) (int, error) {
	o := exportOptions{progress: noopProgress{}}
	for _, opt := range opts {
		opt(&o)
	}
	query, err := filterexpr.Compile(o.filter, "", repository.LessonQuerySchema)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", entity.ErrInvalidFilter, err)
	}

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	page := repository.Pagination{PageNo: 1, PageSize: int32(s.batchSize)}
	written := 0
	started := false
	for {
		lessons, total, err := s.repo.List(ctx, query, page)
		if err != nil {
			return written, fmt.Errorf("list lessons page %d: %w", page.PageNo, err)
		}
		if !started {
			o.progress.StartTable(LessonsTable, int(total))
			started = true
		}
		for _, l := range lessons {
			data, err := json.Marshal(l)
			if err != nil {
				return written, fmt.Errorf("encode lesson %s: %w", l.ID, err)
			}
			if err := enc.Encode(record{Table: LessonsTable, Data: data}); err != nil {
				return written, fmt.Errorf("write lesson %s: %w", l.ID, err)
			}
			written++
		}
		o.progress.Increment(LessonsTable, len(lessons))
		if len(lessons) < s.batchSize || int64(written) >= total {
			break
		}
		page.PageNo++
	}
	o.progress.FinishTable(LessonsTable)

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("flush backup: %w", err)
	}
	s.log.WithField("lessons", written).Info("backup exported")
	return written, nil
}

type importOptions struct {
	progress ProgressReporter
	dryRun   bool
}

type ImportOption func(*importOptions)

func WithImportProgress(p ProgressReporter) ImportOption {
	return func(o *importOptions) {
		if p != nil {
			o.progress = p
		}
	}
}

// WithDryRun validates the backup without writing anything.
func WithDryRun(dryRun bool) ImportOption {
	return func(o *importOptions) { o.dryRun = dryRun }
}

// Import validates and upserts every lesson in r. It stops at the first bad
// line; lessons before it stay imported.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) (int, error) {
	o := importOptions{progress: noopProgress{}}
	for _, opt := range opts {
		opt(&o)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), maxLineBytes)
	now := s.clock()
	imported := 0
	line := 0

	o.progress.StartTable(LessonsTable, 0)
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return imported, err
		}

		lesson, err := decodeRecord(raw)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		lesson.Normalize(now)
		if err := lesson.Validate(); err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if !o.dryRun {
			if err := s.repo.Upsert(ctx, lesson); err != nil {
				return imported, fmt.Errorf("line %d: upsert %s: %w", line, lesson.ID, err)
			}
		}
		imported++
		o.progress.Increment(LessonsTable, 1)
	}
	if err := scanner.Err(); err != nil {
		return imported, fmt.Errorf("read backup: %w", err)
	}
	o.progress.FinishTable(LessonsTable)

	s.log.WithFields(logrus.Fields{"lessons": imported, "dry_run": o.dryRun}).Info("backup imported")
	return imported, nil
}

var errUnknownTable = errors.New("unknown table")

func decodeRecord(raw []byte) (*entity.Lesson, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec.Table != LessonsTable {
		return nil, fmt.Errorf("%w %q", errUnknownTable, rec.Table)
	}
	var lesson entity.Lesson
	if err := json.Unmarshal(rec.Data, &lesson); err != nil {
		return nil, fmt.Errorf("decode lesson: %w", err)
	}
	return &lesson, nil
}
