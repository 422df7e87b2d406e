package repository

import (
	"context"
	"fmt"
	"strings"

	"planboard/internal/database"
	"planboard/internal/domain/resource"
)

// ResourceRepository serves every CRUD family through one implementation;
// the descriptor supplies the table, columns and ordering. Values travel as
// maps keyed by column name.
type ResourceRepository struct {
	db database.DB
	d  resource.Descriptor
}

func NewResourceRepository(db database.DB, d resource.Descriptor) *ResourceRepository {
	return &ResourceRepository{db: db, d: d}
}

func (r *ResourceRepository) Descriptor() resource.Descriptor {
	return r.d
}

func (r *ResourceRepository) Create(ctx context.Context, values map[string]any) (int64, error) {
	cols := r.d.Columns()
	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = values[c]
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		r.d.Table,
		strings.Join(cols, ", "),
		placeholders(len(cols)),
	)
	return r.db.Insert(ctx, q, args...)
}

func (r *ResourceRepository) ListByOwner(ctx context.Context, owner string) ([]map[string]any, error) {
	cols := r.d.Columns()
	q := fmt.Sprintf(
		"SELECT id, %s FROM %s WHERE %s = ? ORDER BY %s",
		strings.Join(cols, ", "),
		r.d.Table,
		r.d.OwnerColumn,
		r.d.OrderBy,
	)

	rows, err := r.db.Query(ctx, q, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]map[string]any, 0)
	for rows.Next() {
		var id int64
		dest := make([]any, len(cols)+1)
		dest[0] = &id
		vals := make([]any, len(cols))
		for i := range vals {
			dest[i+1] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		rec := make(map[string]any, len(cols)+1)
		rec["id"] = id
		for i, c := range cols {
			rec[c] = normalizeValue(vals[i])
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces every mutable column of the row. A zero count means the id
// does not exist, which is not an error.
func (r *ResourceRepository) Update(ctx context.Context, id int64, values map[string]any) (int64, error) {
	var sets []string
	var args []any
	for _, f := range r.d.Fields {
		if f.Immutable {
			continue
		}
		sets = append(sets, f.Column+" = ?")
		args = append(args, values[f.Column])
	}
	args = append(args, id)

	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", r.d.Table, strings.Join(sets, ", "))
	return r.db.Exec(ctx, q, args...)
}

func (r *ResourceRepository) Delete(ctx context.Context, id int64) (int64, error) {
	q := fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.d.Table)
	return r.db.Exec(ctx, q, id)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// normalizeValue flattens driver-specific scan results so records render the
// same JSON regardless of backend.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	default:
		return v
	}
}
