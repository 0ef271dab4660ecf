package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
	"github.com/eslsoft/lingoguru/pkg/filterexpr"
)

// SQLDialect captures the differences between the database/sql drivers we run on.
type SQLDialect struct {
	Driver      string
	Placeholder func(n int) string
	Schema      string
}

var (
	SQLiteDialect = SQLDialect{
		Driver:      "sqlite3",
		Placeholder: filterexpr.QuestionPlaceholder,
		Schema: `CREATE TABLE IF NOT EXISTS lessons (
	id         TEXT PRIMARY KEY,
	level      TEXT NOT NULL,
	origin     TEXT NOT NULL,
	title      TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	document   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS lessons_level_idx ON lessons (level);`,
	}
	PostgresDialect = SQLDialect{
		Driver:      "postgres",
		Placeholder: filterexpr.DollarPlaceholder,
		Schema:      postgresSchema,
	}
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS lessons (
	id         TEXT PRIMARY KEY,
	level      TEXT NOT NULL,
	origin     TEXT NOT NULL,
	title      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	document   JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS lessons_level_idx ON lessons (level);`

// DialectFor returns the dialect registered for a database/sql driver name.
func DialectFor(driver string) (SQLDialect, error) {
	switch driver {
	case SQLiteDialect.Driver:
		return SQLiteDialect, nil
	case PostgresDialect.Driver:
		return PostgresDialect, nil
	default:
		return SQLDialect{}, fmt.Errorf("unsupported sql driver %q", driver)
	}
}

type sqlLessonRepository struct {
	db      *sql.DB
	dialect SQLDialect
}

// NewSQLLessonRepository stores lessons through database/sql.
func NewSQLLessonRepository(db *sql.DB, dialect SQLDialect) repository.LessonRepository {
	return &sqlLessonRepository{db: db, dialect: dialect}
}

// EnsureSQLSchema creates the lessons table when missing.
func EnsureSQLSchema(ctx context.Context, db *sql.DB, dialect SQLDialect) error {
	for _, stmt := range strings.Split(dialect.Schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func (r *sqlLessonRepository) ph(n int) string { return r.dialect.Placeholder(n) }

func (r *sqlLessonRepository) Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	row, err := toLessonRow(lesson)
	if err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf(`INSERT INTO lessons (id, level, origin, title, created_at, document) VALUES (%s, %s, %s, %s, %s, %s)`,
		r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6))
	if _, err := r.db.ExecContext(ctx, stmt, row.ID, row.Level, row.Origin, row.Title, row.CreatedAt, string(row.Document)); err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrDuplicateLesson
		}
		return nil, fmt.Errorf("insert lesson: %w", err)
	}
	return r.GetByID(ctx, lesson.ID)
}

func (r *sqlLessonRepository) Upsert(ctx context.Context, lesson *entity.Lesson) error {
	row, err := toLessonRow(lesson)
	if err != nil {
		return err
	}
	stmt := fmt.Sprintf(`INSERT INTO lessons (id, level, origin, title, created_at, document) VALUES (%s, %s, %s, %s, %s, %s)
ON CONFLICT (id) DO UPDATE SET level = excluded.level, origin = excluded.origin, title = excluded.title,
	created_at = excluded.created_at, document = excluded.document`,
		r.ph(1), r.ph(2), r.ph(3), r.ph(4), r.ph(5), r.ph(6))
	if _, err := r.db.ExecContext(ctx, stmt, row.ID, row.Level, row.Origin, row.Title, row.CreatedAt, string(row.Document)); err != nil {
		return fmt.Errorf("upsert lesson: %w", err)
	}
	return nil
}

func (r *sqlLessonRepository) GetByID(ctx context.Context, id string) (*entity.Lesson, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT document FROM lessons WHERE id = %s`, r.ph(1)), id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return decodeLesson(doc)
}

func (r *sqlLessonRepository) List(ctx context.Context, query *filterexpr.Query, page repository.Pagination) ([]*entity.Lesson, int64, error) {
	where, args, orderBy := query.SQL(r.ph)
	if where != "" {
		where = " WHERE " + where
	}
	if orderBy == "" {
		orderBy = "id ASC"
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lessons"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count lessons: %w", err)
	}

	stmt := "SELECT document FROM lessons" + where + " ORDER BY " + orderBy
	if page.PageSize > 0 {
		stmt += fmt.Sprintf(" LIMIT %s OFFSET %s", r.ph(len(args)+1), r.ph(len(args)+2))
		args = append(args, page.PageSize, page.Offset())
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var out []*entity.Lesson
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, 0, fmt.Errorf("scan lesson: %w", err)
		}
		l, err := decodeLesson(doc)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate lessons: %w", err)
	}
	return out, total, nil
}

func (r *sqlLessonRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM lessons WHERE id = %s`, r.ph(1)), id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return entity.ErrLessonNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
