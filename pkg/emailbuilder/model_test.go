package emailbuilder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalBlockDispatch(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected BlockType
	}{
		{
			name:     "text block",
			payload:  `{"id":"b1","type":"text","content":"<p>hello</p>"}`,
			expected: BlockTypeText,
		},
		{
			name:     "heading block",
			payload:  `{"id":"b2","type":"heading","content":"Hi","level":1}`,
			expected: BlockTypeHeading,
		},
		{
			name:     "spacer block",
			payload:  `{"id":"b3","type":"spacer","height":"40px"}`,
			expected: BlockTypeSpacer,
		},
		{
			name:     "footer block",
			payload:  `{"id":"b4","type":"footer","companyName":"Acme"}`,
			expected: BlockTypeFooter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := UnmarshalBlock([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, block.GetType())
		})
	}
}

func TestUnmarshalBlockUnknownType(t *testing.T) {
	_, err := UnmarshalBlock([]byte(`{"id":"x","type":"carousel"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown block type")
}

func TestBlockListRoundTrip(t *testing.T) {
	nested := NewBlock(BlockTypeText).(*TextBlock)
	nested.Content = "<p>left</p>"

	columns := NewBlock(BlockTypeColumns).(*ColumnsBlock)
	columns.Columns[0].Blocks = []Block{nested}

	button := NewBlock(BlockTypeButton).(*ButtonBlock)
	button.Link = "https://example.org/give"

	original := []Block{columns, button}

	data, err := MarshalBlocks(original)
	require.NoError(t, err)

	decoded, err := UnmarshalBlocks(data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	decodedColumns, ok := decoded[0].(*ColumnsBlock)
	require.True(t, ok)
	assert.Equal(t, columns.ID, decodedColumns.ID)
	require.Len(t, decodedColumns.Columns, 2)
	require.Len(t, decodedColumns.Columns[0].Blocks, 1)

	decodedText, ok := decodedColumns.Columns[0].Blocks[0].(*TextBlock)
	require.True(t, ok)
	assert.Equal(t, "<p>left</p>", decodedText.Content)
	assert.Empty(t, decodedColumns.Columns[1].Blocks)

	decodedButton, ok := decoded[1].(*ButtonBlock)
	require.True(t, ok)
	assert.Equal(t, "https://example.org/give", decodedButton.Link)
	require.NotNil(t, decodedButton.ButtonStyle)
	assert.Equal(t, "#4f46e5", decodedButton.ButtonStyle.BackgroundColor)
}

func TestSparseBlockStaysMinimal(t *testing.T) {
	block := &TextBlock{
		BaseBlock: BaseBlock{ID: "t1", Type: BlockTypeText},
		Content:   "<p>hi</p>",
	}

	data, err := json.Marshal(block)
	require.NoError(t, err)
	// Defaults are applied at render time, never persisted.
	assert.NotContains(t, string(data), "style")
	assert.NotContains(t, string(data), "fontSize")
}

func TestCloneBlockIsDeep(t *testing.T) {
	columns := NewBlock(BlockTypeColumns).(*ColumnsBlock)
	text := NewBlock(BlockTypeText).(*TextBlock)
	text.Content = "<p>before</p>"
	columns.Columns[0].Blocks = []Block{text}
	columns.Style = &BlockStyle{BackgroundColor: "#ffffff"}

	clone := CloneBlock(columns).(*ColumnsBlock)
	clone.Columns[0].Blocks[0].(*TextBlock).Content = "<p>after</p>"
	clone.Style.BackgroundColor = "#000000"

	assert.Equal(t, "<p>before</p>", columns.Columns[0].Blocks[0].(*TextBlock).Content)
	assert.Equal(t, "#ffffff", columns.Style.BackgroundColor)
	assert.Equal(t, columns.ID, clone.ID)
}

func TestBlockStyleMerge(t *testing.T) {
	base := &BlockStyle{Color: "#111111", Padding: "10px"}

	merged := base.Merge(BlockStyle{Color: "#222222", TextAlign: "center"})

	assert.Equal(t, "#222222", merged.Color)
	assert.Equal(t, "10px", merged.Padding)
	assert.Equal(t, "center", merged.TextAlign)
	// Merge never mutates the receiver.
	assert.Equal(t, "#111111", base.Color)

	var nilStyle *BlockStyle
	fromNil := nilStyle.Merge(BlockStyle{Padding: "4px"})
	assert.Equal(t, "4px", fromNil.Padding)
}

func TestBlockTypeValidate(t *testing.T) {
	for _, blockType := range BlockTypes {
		assert.NoError(t, blockType.Validate())
	}
	assert.Error(t, BlockType("video").Validate())
}
