package repository

import (
	"strings"
)

// Resource describes how one table is read: its alias, selected columns,
// joins, default ordering and the sort keys clients may request.
type Resource struct {
	Table    string
	Alias    string
	Columns  string
	Joins    string
	OrderBy  string
	Sortable map[string]string
}

func (r Resource) alias() string {
	if r.Alias != "" {
		return r.Alias
	}
	return r.Table
}

// Col qualifies a column with the resource alias.
func (r Resource) Col(name string) string {
	return r.alias() + "." + name
}

func (r Resource) columns() string {
	if r.Columns != "" {
		return r.Columns
	}
	return r.alias() + ".*"
}

func (r Resource) from() string {
	var sb strings.Builder
	sb.WriteString(r.Table)
	if r.Alias != "" {
		sb.WriteString(" ")
		sb.WriteString(r.Alias)
	}
	if r.Joins != "" {
		sb.WriteString(" ")
		sb.WriteString(r.Joins)
	}
	return sb.String()
}

// orderBy resolves a client sort key such as "created_at" or "-created_at"
// through the Sortable allowlist. Unknown keys use the default ordering.
func (r Resource) orderBy(sort string) string {
	def := r.OrderBy
	if def == "" {
		def = r.Col("id") + " DESC"
	}

	sort = strings.TrimSpace(sort)
	if sort == "" {
		return def
	}
	dir := "ASC"
	switch {
	case strings.HasPrefix(sort, "-"):
		dir = "DESC"
		sort = sort[1:]
	case strings.HasSuffix(strings.ToLower(sort), ":desc"):
		dir = "DESC"
		sort = sort[:len(sort)-5]
	case strings.HasSuffix(strings.ToLower(sort), ":asc"):
		sort = sort[:len(sort)-4]
	}

	col, ok := r.Sortable[sort]
	if !ok {
		return def
	}
	return col + " " + dir + ", " + r.Col("id") + " " + dir
}

// userObject renders a users row (and its avatar upload) as a JSON object.
func userObject(userAlias, uploadAlias string) string {
	return "json_build_object('id', " + userAlias + ".id, 'full_name', " + userAlias + ".full_name, 'email', " +
		userAlias + ".email, 'upload', CASE WHEN " + uploadAlias + ".id IS NULL THEN NULL ELSE json_build_object('id', " +
		uploadAlias + ".id, 'file_name', " + uploadAlias + ".file_name, 'file_type', " + uploadAlias + ".file_type, 'file_url', " +
		uploadAlias + ".file_url) END)"
}

var (
	UserResource = Resource{
		Table:   "users",
		Alias:   "u",
		OrderBy: "u.created_at DESC, u.id DESC",
		Sortable: map[string]string{
			"created_at": "u.created_at",
			"full_name":  "u.full_name",
			"email":      "u.email",
		},
	}

	EventResource = Resource{
		Table:   "events",
		Alias:   "e",
		OrderBy: "e.start_timestamp ASC, e.id ASC",
		Sortable: map[string]string{
			"start_timestamp": "e.start_timestamp",
			"created_at":      "e.created_at",
			"title":           "e.title",
			"total_attendee":  "e.total_attendee",
		},
	}

	EventDetailResource = Resource{
		Table:    "events",
		Alias:    "e",
		Columns:  "e.*, " + userObject("u", "uu") + " AS owner, CASE WHEN c.id IS NULL THEN NULL ELSE json_build_object('id', c.id, 'file_name', c.file_name, 'file_type', c.file_type, 'file_url', c.file_url) END AS cover",
		Joins:    "JOIN users u ON u.id = e.user_id AND u.deleted_at IS NULL LEFT JOIN uploads uu ON uu.id = u.uploads_id LEFT JOIN uploads c ON c.id = e.cover_photo_id",
		OrderBy:  EventResource.OrderBy,
		Sortable: EventResource.Sortable,
	}

	AttendeeResource = Resource{
		Table:   "event_attendees",
		Alias:   "a",
		OrderBy: "a.created_at ASC, a.id ASC",
	}

	AttendeeViewResource = Resource{
		Table:   "event_attendees",
		Alias:   "a",
		Columns: "a.*, " + userObject("u", "uu") + " AS attendee",
		Joins:   "JOIN users u ON u.id = a.user_id AND u.deleted_at IS NULL LEFT JOIN uploads uu ON uu.id = u.uploads_id",
		OrderBy: "a.created_at ASC, a.id ASC",
	}

	AttendeeTaskResource = Resource{
		Table:   "attendee_tasks",
		Alias:   "t",
		OrderBy: "t.start_timestamp ASC, t.id ASC",
		Sortable: map[string]string{
			"start_timestamp": "t.start_timestamp",
			"status":          "t.status",
		},
	}

	FeedbackResource = Resource{
		Table: "feedback",
		Alias: "f",
	}

	FeedbackViewResource = Resource{
		Table:   "feedback",
		Alias:   "f",
		Columns: "f.*, " + userObject("u", "uu") + " AS author",
		Joins:   "JOIN users u ON u.id = f.user_id LEFT JOIN uploads uu ON uu.id = u.uploads_id",
		OrderBy: "f.created_at DESC, f.id DESC",
	}

	ReportResource = Resource{
		Table: "report",
		Alias: "r",
	}

	ReportViewResource = Resource{
		Table: "report",
		Alias: "r",
		Columns: "r.*, " + userObject("cu", "cuu") + " AS creator_info, " +
			userObject("ru", "ruu") + " AS reported_info",
		Joins: "JOIN users cu ON cu.id = r.report_creator_id LEFT JOIN uploads cuu ON cuu.id = cu.uploads_id " +
			"JOIN users ru ON ru.id = r.reported_user_id LEFT JOIN uploads ruu ON ruu.id = ru.uploads_id",
		OrderBy: "r.created_at DESC, r.id DESC",
	}

	BlockResource = Resource{
		Table: "block_users",
		Alias: "b",
	}

	BlockViewResource = Resource{
		Table: "block_users",
		Alias: "b",
		Columns: "b.*, " + userObject("cu", "cuu") + " AS creator_info, " +
			userObject("bu", "buu") + " AS blocked_info",
		Joins: "JOIN users cu ON cu.id = b.block_creator_id LEFT JOIN uploads cuu ON cuu.id = cu.uploads_id " +
			"JOIN users bu ON bu.id = b.block_user_id LEFT JOIN uploads buu ON buu.id = bu.uploads_id",
		OrderBy: "b.created_at DESC, b.id DESC",
	}

	QuestionTypeResource = Resource{
		Table:   "question_types",
		Alias:   "q",
		OrderBy: "q.id ASC",
		Sortable: map[string]string{
			"id":         "q.id",
			"text":       "q.text",
			"type":       "q.type",
			"created_at": "q.created_at",
		},
	}

	QuestionResponseResource = Resource{
		Table:   "question_type_responses",
		Alias:   "qr",
		OrderBy: "qr.created_at DESC, qr.id DESC",
	}

	CategoryResource = Resource{
		Table:   "categories",
		Alias:   "c",
		OrderBy: "c.name ASC, c.id ASC",
		Sortable: map[string]string{
			"name":       "c.name",
			"created_at": "c.created_at",
		},
	}

	NotificationTypeResource = Resource{
		Table:   "notification_type",
		Alias:   "nt",
		OrderBy: "nt.id ASC",
	}

	SuggestedItemResource = Resource{
		Table:   "suggested_items",
		Alias:   "s",
		OrderBy: "s.id ASC",
		Sortable: map[string]string{
			"name":       "s.name",
			"created_at": "s.created_at",
		},
	}

	NotificationResource = Resource{
		Table: "notification",
		Alias: "n",
	}

	// Notifications to or from deleted accounts are hidden.
	NotificationViewResource = Resource{
		Table: "notification",
		Alias: "n",
		Columns: "n.*, t.name AS type_name, " + userObject("su", "suu") + " AS sender_info, " +
			userObject("ru", "ruu") + " AS receiver_info",
		Joins: "JOIN users su ON su.id = n.sender_id AND su.deleted_at IS NULL LEFT JOIN uploads suu ON suu.id = su.uploads_id " +
			"JOIN users ru ON ru.id = n.receiver_id AND ru.deleted_at IS NULL LEFT JOIN uploads ruu ON ruu.id = ru.uploads_id " +
			"JOIN notification_type t ON t.id = n.type",
		OrderBy: "n.created_at DESC, n.id DESC",
	}

	FAQResource = Resource{
		Table:   "faq",
		Alias:   "fq",
		OrderBy: "fq.id ASC",
	}

	UploadResource = Resource{
		Table: "uploads",
		Alias: "up",
	}

	AuditLogResource = Resource{
		Table:   "audit_logs",
		Alias:   "al",
		OrderBy: "al.created_at DESC, al.id DESC",
	}
)
