// Package schema creates the tables at process start. Setup is additive and
// idempotent: every statement either creates something that is missing or is
// a no-op against an already-initialized store, so it is safe to run on every
// restart.
package schema

import (
	"context"
	"fmt"

	"planboard/internal/database"
)

// tableDefs are the body of each CREATE TABLE, minus the id primary key,
// which is dialect-specific and prepended by Init.
var tableDefs = []struct {
	name string
	body string
}{
	{"users", `
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_date TEXT`},
	{"projects", `
		name TEXT NOT NULL,
		user_email TEXT NOT NULL,
		status TEXT,
		category TEXT,
		colleagues TEXT NOT NULL DEFAULT '[]',
		created_date TEXT`},
	// Declared by the original schema but never read or written by any
	// handler; kept so restarts against old data files stay clean.
	{"colleagues", `
		project_id INTEGER,
		name TEXT,
		email TEXT`},
	{"meetings", `
		colleague_email TEXT NOT NULL,
		meeting_date TEXT,
		description TEXT,
		created_date TEXT`},
	{"ideas", `
		user_email TEXT NOT NULL,
		title TEXT,
		content TEXT,
		category TEXT,
		created_date TEXT`},
	{"notes", `
		user_email TEXT NOT NULL,
		title TEXT,
		content TEXT,
		category TEXT,
		created_date TEXT`},
	{"career_goals", `
		user_email TEXT NOT NULL,
		title TEXT,
		description TEXT,
		category TEXT,
		priority TEXT,
		status TEXT,
		progress INTEGER,
		target_date TEXT,
		created_date TEXT`},
	{"future_work", `
		user_email TEXT NOT NULL,
		title TEXT,
		description TEXT,
		category TEXT,
		priority TEXT,
		status TEXT,
		created_date TEXT`},
	{"deadlines", `
		user_email TEXT NOT NULL,
		title TEXT,
		description TEXT,
		due_date TEXT,
		priority TEXT,
		created_date TEXT`},
	{"calendar_events", `
		user_email TEXT NOT NULL,
		title TEXT,
		description TEXT,
		event_date TEXT,
		event_time TEXT,
		weekly_repeat INTEGER,
		created_date TEXT`},
}

// DescriptionColumns is the fixed list of free-text questionnaire columns
// patched onto the projects table additively. Order matters only for
// reproducible setup logs.
var DescriptionColumns = []string{
	"objectives",
	"target_audiences",
	"timeline",
	"budget",
	"approvals",
	"risks",
	"stakeholders",
	"success_metrics",
	"constraints_notes",
	"assumptions",
	"dependencies",
	"deliverables",
	"milestones",
	"resources",
	"communication_plan",
	"scope_in",
	"scope_out",
	"quality_criteria",
	"testing_strategy",
	"rollout_plan",
	"training_plan",
	"support_plan",
	"maintenance_plan",
	"security_considerations",
	"compliance_notes",
	"open_issues",
	"lessons_learned",
	"next_steps",
}

// Init creates any missing tables and additively patches the projects
// questionnaire columns. A duplicate-column error from a patch means the
// column is already there and is treated as success; every other error is
// surfaced.
func Init(ctx context.Context, db database.DB) error {
	d := db.Dialect()

	for _, t := range tableDefs {
		stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (id %s,%s)", t.name, d.AutoIncrementPK(), t.body)
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}

	for _, col := range DescriptionColumns {
		stmt := fmt.Sprintf("ALTER TABLE projects ADD COLUMN %s TEXT", col)
		if _, err := db.Exec(ctx, stmt); err != nil {
			if d.IsDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("add column projects.%s: %w", col, err)
		}
	}

	return nil
}
