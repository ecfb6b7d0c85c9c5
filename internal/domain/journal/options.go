package journal

// SaveRequest defines upsert-by-date inputs. An empty Date means today.
type SaveRequest struct {
	Date    string
	Title   string
	Content string
	Tags    []string
}

// UpdateRequest defines a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Date    *string
	Title   *string
	Content *string
	Tags    []string
}
