package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/custodia-labs/bank-core/internal/core/domain"
)

// foreignKeyViolation is the PostgreSQL SQLSTATE for foreign_key_violation
const foreignKeyViolation pq.ErrorCode = "23503"

// table maps an entity type onto a table with a BIGSERIAL id column
type table[T domain.Entity] struct {
	name string

	// columns lists the non-id columns in insert order
	columns []string

	newEntity func() T

	// scanDest returns pointers for id followed by columns
	scanDest func(T) []any

	// values returns insert arguments matching columns
	values func(T) []any
}

func (t table[T]) selectQuery() string {
	return fmt.Sprintf("SELECT id, %s FROM %s", strings.Join(t.columns, ", "), t.name)
}

func (t table[T]) insertQuery() string {
	placeholders := make([]string, len(t.columns))
	for i := range t.columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		t.name, strings.Join(t.columns, ", "), strings.Join(placeholders, ", "))
}

func (t table[T]) deleteQuery() string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.name)
}

// EntityStore implements driven.EntityStore for one table
type EntityStore[T domain.Entity] struct {
	db    *DB
	table table[T]
}

func newEntityStore[T domain.Entity](db *DB, t table[T]) *EntityStore[T] {
	return &EntityStore[T]{db: db, table: t}
}

// Save inserts the entity and assigns the generated ID
func (s *EntityStore[T]) Save(ctx context.Context, entity T) error {
	var id int64
	err := s.db.QueryRowContext(ctx, s.table.insertQuery(), s.table.values(entity)...).Scan(&id)
	if err != nil {
		return s.mapWriteError(err)
	}
	entity.SetID(id)
	return nil
}

// Get retrieves an entity by ID
func (s *EntityStore[T]) Get(ctx context.Context, id int64) (T, error) {
	entity := s.table.newEntity()
	err := s.db.QueryRowContext(ctx, s.table.selectQuery()+" WHERE id = $1", id).
		Scan(s.table.scanDest(entity)...)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, domain.ErrNotFound
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("select %s: %w", s.table.name, err)
	}
	return entity, nil
}

// List retrieves all entities ordered by ID
func (s *EntityStore[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, s.table.selectQuery()+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table.name, err)
	}
	defer rows.Close()

	entities := []T{}
	for rows.Next() {
		entity := s.table.newEntity()
		if err := rows.Scan(s.table.scanDest(entity)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table.name, err)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entities, nil
}

// Delete removes an entity. A missing ID is not an error.
func (s *EntityStore[T]) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.table.deleteQuery(), id); err != nil {
		return fmt.Errorf("delete %s: %w", s.table.name, err)
	}
	return nil
}

func (s *EntityStore[T]) mapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", s.table.name, domain.ErrAlreadyExists)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s references a missing record", domain.ErrInvalidInput, s.table.name)
		}
	}
	return fmt.Errorf("insert %s: %w", s.table.name, err)
}

// nullID scans a nullable foreign key into an int64, NULL becoming 0
type nullID struct {
	id *int64
}

func (n nullID) Scan(src any) error {
	var v sql.NullInt64
	if err := v.Scan(src); err != nil {
		return err
	}
	*n.id = v.Int64
	return nil
}

// refID stores an unset (zero) reference as NULL
func refID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
