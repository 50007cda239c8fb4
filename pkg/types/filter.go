package types

// FilterRule is a user-defined rule applied to incoming mail by the host
type FilterRule struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Conditions []FilterCondition `json:"conditions"`
	Actions    []FilterAction    `json:"actions"`
	Enabled    bool              `json:"enabled"`
}

// FilterCondition matches a message field against a value
type FilterCondition struct {
	Field    string `json:"field"`    // from, to, subject, body, date
	Operator string `json:"operator"` // contains, notContains, equals, notEquals, regex
	Value    string `json:"value"`
}

// FilterAction describes what to do with a matched message
type FilterAction struct {
	Type   string `json:"type"` // moveToFolder, markAsRead, markAsStarred, delete, addTag
	Folder string `json:"folder,omitempty"`
	Tag    string `json:"tag,omitempty"`
}
