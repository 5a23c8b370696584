package schema

// CoreProjectTable represents the 'core.project' table
type CoreProjectTable struct {
	Table     string
	ID        string
	Title     string
	Slug      string
	Summary   string
	Body      string
	CoverRef  string
	Gallery   string
	Specs     string
	CreatedAt string
	UpdatedAt string
}

// CoreProject is the schema definition for core.project
var CoreProject = CoreProjectTable{
	Table:     "core.project",
	ID:        "id",
	Title:     "title",
	Slug:      "slug",
	Summary:   "summary",
	Body:      "body",
	CoverRef:  "coverref",
	Gallery:   "gallery",
	Specs:     "specs",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CoreProjectTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Summary, t.Body, t.CoverRef, t.Gallery, t.Specs, t.CreatedAt, t.UpdatedAt,
	}
}
