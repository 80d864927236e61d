package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"lifehub/pkg/apperr"
	"lifehub/pkg/logger"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Schema is the static, per-kind declaration the generic repository runs on:
// column names, the subset an update may touch, and the column searched by
// list filters. There is no reflection over the store schema; every kind
// spells its shape out in schemas.go.
type Schema[T any] struct {
	Table           string
	Columns         []string // full ordered column list, starting id, owner_id and ending created_at
	Editable        []string // columns an update statement may change
	SearchColumn    string   // column matched by the list filter
	HasComplete     bool     // kind has a completion flag; drives the incomplete count
	OrderByComplete bool     // incomplete rows list before completed ones

	Scan           func(row rowScanner) (T, error)
	Values         func(rec T) []any // one value per Columns entry
	EditableValues func(rec T) []any // one value per Editable entry
}

// Repository is the generic data-access layer. Every query it issues carries
// a WHERE owner_id clause, so a caller can only ever see or touch its own
// rows; a missing row and a row owned by someone else come back as the same
// apperr.ErrNotFound.
type Repository[T any] struct {
	DB     *sql.DB
	Schema Schema[T]

	listQuery   string
	searchQuery string
	getQuery    string
	insertQuery string
	updateQuery string
	deleteQuery string
	countQuery  string
}

func NewRepository[T any](db *sql.DB, schema Schema[T]) *Repository[T] {
	cols := strings.Join(schema.Columns, ", ")

	order := " ORDER BY created_at ASC, id"
	if schema.OrderByComplete {
		order = " ORDER BY complete ASC, created_at ASC, id"
	}

	listBase := fmt.Sprintf("SELECT %s FROM %s WHERE owner_id = $1", cols, schema.Table)
	searchClause := fmt.Sprintf(" AND %s ILIKE '%%' || $2 || '%%'", schema.SearchColumn)

	placeholders := make([]string, len(schema.Columns))
	for i := range schema.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sets := make([]string, len(schema.Editable))
	for i, col := range schema.Editable {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	n := len(schema.Editable)

	return &Repository[T]{
		DB:          db,
		Schema:      schema,
		listQuery:   listBase + order,
		searchQuery: listBase + searchClause + order,
		getQuery:    fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND owner_id = $2", cols, schema.Table),
		insertQuery: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", schema.Table, cols, strings.Join(placeholders, ", ")),
		updateQuery: fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND owner_id = $%d", schema.Table, strings.Join(sets, ", "), n+1, n+2),
		deleteQuery: fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND owner_id = $2", schema.Table),
		countQuery:  fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE owner_id = $1 AND complete = false", schema.Table),
	}
}

// likeEscaper neutralizes LIKE pattern metacharacters so filter text is
// matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List returns the caller's records, optionally narrowed to rows whose
// search column contains the filter text as a literal, case-insensitive
// substring. No matches is an empty slice, not an error.
func (r *Repository[T]) List(ctx context.Context, ownerID, search string) ([]T, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if search != "" {
		rows, err = r.DB.QueryContext(ctx, r.searchQuery, ownerID, likeEscaper.Replace(search))
	} else {
		rows, err = r.DB.QueryContext(ctx, r.listQuery, ownerID)
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to list %s for owner %s: %v", r.Schema.Table, ownerID, err)
		return nil, apperr.Unavailable(err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		rec, err := r.Schema.Scan(rows)
		if err != nil {
			logger.Sugar.Errorf("Failed to scan %s row: %v", r.Schema.Table, err)
			return nil, apperr.Unavailable(err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return items, nil
}

func (r *Repository[T]) Get(ctx context.Context, ownerID, id string) (T, error) {
	rec, err := r.Schema.Scan(r.DB.QueryRowContext(ctx, r.getQuery, id, ownerID))
	if err == sql.ErrNoRows {
		return rec, apperr.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get %s %s: %v", r.Schema.Table, id, err)
		return rec, apperr.Unavailable(err)
	}
	return rec, nil
}

func (r *Repository[T]) Create(ctx context.Context, rec T) error {
	if _, err := r.DB.ExecContext(ctx, r.insertQuery, r.Schema.Values(rec)...); err != nil {
		logger.Sugar.Errorf("Failed to create %s: %v", r.Schema.Table, err)
		return apperr.Unavailable(err)
	}
	return nil
}

// Update writes the editable columns only; owner_id and created_at are not
// in any update statement, so they cannot change after creation.
func (r *Repository[T]) Update(ctx context.Context, ownerID, id string, rec T) error {
	args := append(r.Schema.EditableValues(rec), id, ownerID)
	result, err := r.DB.ExecContext(ctx, r.updateQuery, args...)
	if err != nil {
		logger.Sugar.Errorf("Failed to update %s %s: %v", r.Schema.Table, id, err)
		return apperr.Unavailable(err)
	}
	return requireRow(result)
}

func (r *Repository[T]) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.DB.ExecContext(ctx, r.deleteQuery, id, ownerID)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete %s %s: %v", r.Schema.Table, id, err)
		return apperr.Unavailable(err)
	}
	return requireRow(result)
}

// CountIncomplete counts the caller's records with complete = false over the
// whole owned set, independent of any list filter.
func (r *Repository[T]) CountIncomplete(ctx context.Context, ownerID string) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, r.countQuery, ownerID).Scan(&count); err != nil {
		logger.Sugar.Errorf("Failed to count incomplete %s: %v", r.Schema.Table, err)
		return 0, apperr.Unavailable(err)
	}
	return count, nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.Unavailable(err)
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
