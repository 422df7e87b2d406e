package repository

import (
	"context"
	"fmt"
	"strings"

	"planboard/internal/database"
	"planboard/internal/database/schema"
)

// ProjectDescriptionRepository reads and writes the questionnaire columns of
// the projects table as one flat record keyed by column name.
type ProjectDescriptionRepository struct {
	db database.DB
}

func NewProjectDescriptionRepository(db database.DB) *ProjectDescriptionRepository {
	return &ProjectDescriptionRepository{db: db}
}

func (r *ProjectDescriptionRepository) Get(ctx context.Context, id int64) (map[string]any, bool, error) {
	cols := schema.DescriptionColumns
	q := fmt.Sprintf("SELECT %s FROM projects WHERE id = ?", strings.Join(cols, ", "))

	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, false, rows.Err()
	}

	vals := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, false, err
	}

	rec := make(map[string]any, len(cols))
	for i, c := range cols {
		rec[c] = normalizeValue(vals[i])
	}
	return rec, true, rows.Err()
}

// Update full-replaces every questionnaire column; absent keys are written
// as empty strings so a round-trip always returns a complete record.
func (r *ProjectDescriptionRepository) Update(ctx context.Context, id int64, values map[string]any) (int64, error) {
	cols := schema.DescriptionColumns

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = c + " = ?"
		v, ok := values[c]
		if !ok || v == nil {
			v = ""
		}
		args = append(args, v)
	}
	args = append(args, id)

	q := fmt.Sprintf("UPDATE projects SET %s WHERE id = ?", strings.Join(sets, ", "))
	return r.db.Exec(ctx, q, args...)
}
