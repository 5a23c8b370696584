package schema

// CoreInsightTable represents the 'core.insight' table
type CoreInsightTable struct {
	Table     string
	ID        string
	Title     string
	Slug      string
	Summary   string
	Body      string
	CoverRef  string
	CreatedAt string
	UpdatedAt string
}

// CoreInsight is the schema definition for core.insight
var CoreInsight = CoreInsightTable{
	Table:     "core.insight",
	ID:        "id",
	Title:     "title",
	Slug:      "slug",
	Summary:   "summary",
	Body:      "body",
	CoverRef:  "coverref",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CoreInsightTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Summary, t.Body, t.CoverRef, t.CreatedAt, t.UpdatedAt,
	}
}
