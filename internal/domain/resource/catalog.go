package resource

// Ideas, Notes, CareerGoals, FutureWork, Deadlines, CalendarEvents, Meetings
// and Projects are the CRUD families served by the API. Projects additionally
// carry the questionnaire columns, which are handled by the description
// endpoints rather than listed here.

var Ideas = Descriptor{
	Name:        "ideas",
	Table:       "ideas",
	OwnerColumn: "user_email",
	Fields: []Field{
		{Column: "user_email", Required: true},
		{Column: "title"},
		{Column: "content"},
		{Column: "category", Default: Literal("general")},
		{Column: "created_date", Default: Now, Immutable: true},
	},
	OrderBy: "created_date DESC",
}

var Notes = Descriptor{
	Name:        "notes",
	Table:       "notes",
	OwnerColumn: "user_email",
	Fields: []Field{
		{Column: "user_email", Required: true},
		{Column: "title"},
		{Column: "content"},
		{Column: "category", Default: Literal("general")},
		{Column: "created_date", Default: Now, Immutable: true},
	},
	OrderBy: "created_date DESC",
}

var CareerGoals = Descriptor{
	Name:        "career_goals",
	Table:       "career_goals",
	OwnerColumn: "user_email",
	Fields: []Field{
		{Column: "user_email", Required: true},
		{Column: "title"},
		{Column: "description"},
		{Column: "category", Default: Literal("general")},
		{Column: "priority", Default: Literal("medium")},
		{Column: "status", Default: Literal("active")},
		{Column: "progress", Int: true, Default: Literal(0)},
		{Column: "target_date"},
		{Column: "created_date", Default: Now, Immutable: true},
	},
	OrderBy:     "created_date DESC",
	ListAliases: []string{"/career"},
}

var FutureWork = Descriptor{
	Name:        "future_work",
	Table:       "future_work",
	OwnerColumn: "user_email",
	Fields: []Field{
		{Column: "user_email", Required: true},
		{Column: "title"},
		{Column: "description"},
		{Column: "category", Default: Literal("general")},
		{Column: "priority", Default: Literal("medium")},
		{Column: "status", Default: Literal("planned")},
		{Column: "created_date", Default: Now, Immutable: true},
	},
	OrderBy:     "created_date DESC",
	ListAliases: []string{"/future"},
}

var Deadlines = Descriptor{
	Name:        "deadlines",
	Table:       "deadlines",
	OwnerColumn: "user_email",
	Fields: []Field{
		{Column: "user_email", Required: true},
		{Column: "title"},
		{Column: "description"},
		{Column: "due_date"},
		{Column: "priority", Default: Literal("medium")},
		{Column: "created_date", Default: Now, Immutable: true},
	},
	OrderBy: "due_date ASC",
}

var CalendarEvents = Descriptor{
	Name:        "calendar_events",
	Table:       "calendar_events",
	OwnerColumn: "user_email",
	Fields: []Field{
		{Column: "user_email", Required: true},
		{Column: "title"},
		{Column: "description"},
		{Column: "event_date"},
		{Column: "event_time"},
		{Column: "weekly_repeat", Int: true, Default: Literal(0)},
		{Column: "created_date", Default: Now, Immutable: true},
	},
	OrderBy: "event_date ASC",
}

// EventRenames maps internal calendar_events columns to the short external
// keys served by the canonical /events surface. The legacy /calendar_events
// surface keeps the internal names.
var EventRenames = map[string]string{
	"event_date":    "date",
	"event_time":    "time",
	"weekly_repeat": "repeat",
}

// Meetings are scoped by colleague email rather than by the owning user.
var Meetings = Descriptor{
	Name:        "meetings",
	Table:       "meetings",
	OwnerColumn: "colleague_email",
	Fields: []Field{
		{Column: "colleague_email", Required: true},
		{Column: "meeting_date"},
		{Column: "description"},
		{Column: "created_date", Default: Now, Immutable: true},
	},
	OrderBy: "meeting_date ASC",
}

var Projects = Descriptor{
	Name:        "projects",
	Table:       "projects",
	OwnerColumn: "user_email",
	Fields: []Field{
		{Column: "name", Required: true},
		{Column: "user_email", Required: true},
		{Column: "status", Default: Literal("active")},
		{Column: "category", Default: Literal("general")},
		{Column: "colleagues", Default: Literal("[]"), JSONText: true},
		{Column: "created_date", Default: Now, Immutable: true},
	},
	OrderBy: "created_date DESC",
}

// All lists every family in route-registration order.
var All = []Descriptor{
	Projects,
	Meetings,
	Ideas,
	Notes,
	CareerGoals,
	FutureWork,
	Deadlines,
	CalendarEvents,
}
