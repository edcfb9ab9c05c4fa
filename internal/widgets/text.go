package widgets

// Text holds the user-facing labels shared by the widgets. Pass it to the
// constructors; there is no package-level label state.
type Text struct {
	Add        string
	Reset      string
	Filter     string
	Delete     string
	Copy       string
	SearchHint string
}

// DefaultText returns the English labels.
func DefaultText() Text {
	return Text{
		Add:        "Add",
		Reset:      "Reset",
		Filter:     "Filter",
		Delete:     "Delete",
		Copy:       "Copy",
		SearchHint: "search",
	}
}

// orDefault fills empty labels from DefaultText.
func (t Text) orDefault() Text {
	d := DefaultText()
	if t.Add == "" {
		t.Add = d.Add
	}
	if t.Reset == "" {
		t.Reset = d.Reset
	}
	if t.Filter == "" {
		t.Filter = d.Filter
	}
	if t.Delete == "" {
		t.Delete = d.Delete
	}
	if t.Copy == "" {
		t.Copy = d.Copy
	}
	if t.SearchHint == "" {
		t.SearchHint = d.SearchHint
	}
	return t
}
