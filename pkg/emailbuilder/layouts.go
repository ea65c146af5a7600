package emailbuilder

import "github.com/google/uuid"

// ColumnLayout is one of the fixed column presets offered by the editor.
type ColumnLayout struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	Widths []string `json:"widths"`
}

// ColumnLayouts is the closed preset catalog. The editor only supports
// switching between these, never free-form widths.
var ColumnLayouts = []ColumnLayout{
	{ID: "50-50", Label: "Two columns (50/50)", Widths: []string{"50%", "50%"}},
	{ID: "33-67", Label: "Two columns (33/67)", Widths: []string{"33%", "67%"}},
	{ID: "67-33", Label: "Two columns (67/33)", Widths: []string{"67%", "33%"}},
	{ID: "33-33-33", Label: "Three columns", Widths: []string{"33.33%", "33.33%", "33.33%"}},
}

// ColumnLayoutByID looks up a preset by its id.
func ColumnLayoutByID(id string) (ColumnLayout, bool) {
	for _, layout := range ColumnLayouts {
		if layout.ID == id {
			return layout, true
		}
	}
	return ColumnLayout{}, false
}

// ApplyColumnLayout returns a new column set for the preset. Retained
// positions keep their existing id and nested block list; positions beyond
// the new preset's count are discarded, and new positions start empty.
// The discard is intentional and silent, downsizing is lossy.
func ApplyColumnLayout(existing []Column, layout ColumnLayout) []Column {
	columns := make([]Column, len(layout.Widths))
	for i, width := range layout.Widths {
		if i < len(existing) {
			columns[i] = Column{
				ID:     existing[i].ID,
				Width:  width,
				Blocks: CloneBlocks(existing[i].Blocks),
			}
			if columns[i].Blocks == nil {
				columns[i].Blocks = []Block{}
			}
			continue
		}
		columns[i] = Column{ID: uuid.New().String(), Width: width, Blocks: []Block{}}
	}
	return columns
}
