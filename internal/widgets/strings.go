package widgets

import "strings"

// StringData configures StringItem lists.
type StringData struct {
	// NewTitle labels the draft row.
	NewTitle string
	// Default seeds new drafts.
	Default string
}

// StringItem lets a ListEditor edit a plain list of strings.
type StringItem struct {
	Value string
}

// NewStringItem is the ListEditor factory for StringItem.
func NewStringItem(data StringData) *StringItem {
	return &StringItem{Value: data.Default}
}

// StringItems wraps values for a ListEditor.
func StringItems(values ...string) []*StringItem {
	out := make([]*StringItem, len(values))
	for i, v := range values {
		out[i] = &StringItem{Value: v}
	}
	return out
}

// StringValues unwraps items back into strings.
func StringValues(items []*StringItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Value
	}
	return out
}

func (s *StringItem) Title(StringData) string { return s.Value }

func (s *StringItem) NewTitle(data StringData) string {
	if data.NewTitle != "" {
		return data.NewTitle
	}
	return "new"
}

func (s *StringItem) Matches(query string, _ StringData) bool {
	return strings.Contains(s.Value, query)
}

func (s *StringItem) Fields(StringData) []Field {
	return []Field{{
		Label: "value",
		Value: s.Value,
		Set: func(v string) error {
			s.Value = v
			return nil
		},
	}}
}

func (s *StringItem) Clone() *StringItem {
	c := *s
	return &c
}
