package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/repository"
	"github.com/eslsoft/lingoguru/pkg/filterexpr"
)

type pgxLessonRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLessonRepository stores lessons in PostgreSQL through a pgx pool.
func NewPgxLessonRepository(pool *pgxpool.Pool) repository.LessonRepository {
	return &pgxLessonRepository{pool: pool}
}

// EnsurePgxSchema creates the lessons table when missing.
func EnsurePgxSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

const pgxUpsertLesson = `INSERT INTO lessons (id, level, origin, title, created_at, document) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET level = excluded.level, origin = excluded.origin, title = excluded.title,
	created_at = excluded.created_at, document = excluded.document`

func (r *pgxLessonRepository) Create(ctx context.Context, lesson *entity.Lesson) (*entity.Lesson, error) {
	row, err := toLessonRow(lesson)
	if err != nil {
		return nil, err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO lessons (id, level, origin, title, created_at, document) VALUES ($1, $2, $3, $4, $5, $6)`,
		row.ID, row.Level, row.Origin, row.Title, row.CreatedAt, row.Document)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entity.ErrDuplicateLesson
		}
		return nil, fmt.Errorf("insert lesson: %w", err)
	}
	return r.GetByID(ctx, lesson.ID)
}

func (r *pgxLessonRepository) Upsert(ctx context.Context, lesson *entity.Lesson) error {
	row, err := toLessonRow(lesson)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, pgxUpsertLesson, row.ID, row.Level, row.Origin, row.Title, row.CreatedAt, row.Document); err != nil {
		return fmt.Errorf("upsert lesson: %w", err)
	}
	return nil
}

func (r *pgxLessonRepository) GetByID(ctx context.Context, id string) (*entity.Lesson, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT document FROM lessons WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	return decodeLesson(doc)
}

func (r *pgxLessonRepository) List(ctx context.Context, query *filterexpr.Query, page repository.Pagination) ([]*entity.Lesson, int64, error) {
	where, args, orderBy := query.SQL(filterexpr.DollarPlaceholder)
	if where != "" {
		where = " WHERE " + where
	}
	if orderBy == "" {
		orderBy = "id ASC"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM lessons"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count lessons: %w", err)
	}

	stmt := "SELECT document FROM lessons" + where + " ORDER BY " + orderBy
	if page.PageSize > 0 {
		stmt += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, page.PageSize, page.Offset())
	}
	rows, err := r.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lessons: %w", err)
	}
	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, 0, fmt.Errorf("scan lessons: %w", err)
	}

	out := make([]*entity.Lesson, 0, len(docs))
	for _, doc := range docs {
		l, err := decodeLesson(doc)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, nil
}

func (r *pgxLessonRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrLessonNotFound
	}
	return nil
}
