package emailbuilder

import (
	"github.com/google/uuid"
)

// PreviewMode is the canvas viewport toggle. Pure view state, it never
// affects the block list or the serialized output.
type PreviewMode string

const (
	PreviewModeDesktop PreviewMode = "desktop"
	PreviewModeMobile  PreviewMode = "mobile"
)

// snapshot is one undo/redo history entry: the whole document, blocks
// and global style, deep-copied per mutation.
type snapshot struct {
	blocks      []Block
	globalStyle GlobalStyle
}

// Editor is the single stateful component of the builder: it owns the
// canonical ordered block list, the selection, the undo/redo history and
// the global document style. Every structural or content mutation
// replaces blocks wholesale and appends a whole-document snapshot to the
// history, truncating any redo entries first.
//
// The editor is not safe for concurrent use, it models a single editing
// session.
type Editor struct {
	blocks       []Block
	globalStyle  GlobalStyle
	selectedID   string
	history      []snapshot
	historyIndex int
	previewMode  PreviewMode
}

// NewEditor starts an editing session seeded from an existing template's
// blocks and global style (both may be empty for a blank template). The
// history starts as a single-entry stack holding the initial state, so
// the very first user action is the first undoable step.
func NewEditor(blocks []Block, globalStyle GlobalStyle) *Editor {
	initial := CloneBlocks(blocks)
	if initial == nil {
		initial = []Block{}
	}
	return &Editor{
		blocks:       initial,
		globalStyle:  globalStyle,
		history:      []snapshot{{blocks: CloneBlocks(initial), globalStyle: globalStyle}},
		historyIndex: 0,
		previewMode:  PreviewModeDesktop,
	}
}

// Blocks returns the live ordered block list. Callers must treat it as
// read-only, all mutation goes through the editor's transitions.
func (e *Editor) Blocks() []Block {
	return e.blocks
}

func (e *Editor) GlobalStyle() GlobalStyle {
	return e.globalStyle
}

// SetGlobalStyle changes the document-wide style. It is a history event
// like any other mutation, so undo/redo stays consistent across the
// whole document.
func (e *Editor) SetGlobalStyle(globalStyle GlobalStyle) {
	e.globalStyle = globalStyle
	e.pushHistory()
}

func (e *Editor) PreviewMode() PreviewMode {
	return e.previewMode
}

func (e *Editor) SetPreviewMode(mode PreviewMode) {
	e.previewMode = mode
}

// SelectBlock records the current selection by id. Selection is a weak
// reference and not a history event.
func (e *Editor) SelectBlock(id string) {
	e.selectedID = id
}

func (e *Editor) SelectedBlockID() string {
	return e.selectedID
}

// SelectedBlock resolves the selection against the current list. It
// returns nil when nothing is selected or the referenced block has been
// deleted, the property panel simply doesn't render then.
func (e *Editor) SelectedBlock() Block {
	if e.selectedID == "" {
		return nil
	}
	if i := e.indexOf(e.selectedID); i >= 0 {
		return e.blocks[i]
	}
	return nil
}

// AddBlock appends a new block of the given kind and selects it.
func (e *Editor) AddBlock(blockType BlockType) Block {
	block := NewBlock(blockType)
	e.blocks = append(cloneList(e.blocks), block)
	e.selectedID = block.GetID()
	e.pushHistory()
	return block
}

// InsertBlockAt creates a new block at the drop target position instead
// of the end (palette drag source). The index is clamped to the list
// bounds.
func (e *Editor) InsertBlockAt(blockType BlockType, index int) Block {
	if index < 0 {
		index = 0
	}
	if index > len(e.blocks) {
		index = len(e.blocks)
	}

	block := NewBlock(blockType)
	next := make([]Block, 0, len(e.blocks)+1)
	next = append(next, e.blocks[:index]...)
	next = append(next, block)
	next = append(next, e.blocks[index:]...)
	e.blocks = next
	e.selectedID = block.GetID()
	e.pushHistory()
	return block
}

// MoveBlock moves the source block to the target block's position, an
// array move, not a swap: every block between the two positions shifts
// by one. Same source and target, or an unknown id, is a no-op.
func (e *Editor) MoveBlock(sourceID, targetID string) bool {
	if sourceID == targetID {
		return false
	}
	from := e.indexOf(sourceID)
	to := e.indexOf(targetID)
	if from < 0 || to < 0 {
		return false
	}

	next := cloneList(e.blocks)
	moved := next[from]
	next = append(next[:from], next[from+1:]...)
	tail := make([]Block, 0, len(next)+1)
	tail = append(tail, next[:to]...)
	tail = append(tail, moved)
	tail = append(tail, next[to:]...)
	e.blocks = tail
	e.pushHistory()
	return true
}

// UpdateBlock replaces the block with the given id by a new value. The
// replacement keeps the id, blocks are never renamed by an edit.
func (e *Editor) UpdateBlock(id string, block Block) bool {
	i := e.indexOf(id)
	if i < 0 || block == nil {
		return false
	}
	block.SetID(id)
	next := cloneList(e.blocks)
	next[i] = block
	e.blocks = next
	e.pushHistory()
	return true
}

// DeleteBlock removes a block by id. Nested blocks of a columns block go
// with it, they are owned by value. A deleted selection is cleared.
func (e *Editor) DeleteBlock(id string) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]Block, 0, len(e.blocks)-1)
	next = append(next, e.blocks[:i]...)
	next = append(next, e.blocks[i+1:]...)
	e.blocks = next
	if e.selectedID == id {
		e.selectedID = ""
	}
	e.pushHistory()
	return true
}

// DuplicateBlock deep-clones a block with fresh identities, inserts the
// clone immediately after the source and selects it.
func (e *Editor) DuplicateBlock(id string) Block {
	i := e.indexOf(id)
	if i < 0 {
		return nil
	}

	clone := cloneWithNewIDs(e.blocks[i])
	next := make([]Block, 0, len(e.blocks)+1)
	next = append(next, e.blocks[:i+1]...)
	next = append(next, clone)
	next = append(next, e.blocks[i+1:]...)
	e.blocks = next
	e.selectedID = clone.GetID()
	e.pushHistory()
	return clone
}

// AppendVariable appends a personalization token to a text block's
// content.
func (e *Editor) AppendVariable(id, token string) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	textBlock, ok := e.blocks[i].(*TextBlock)
	if !ok {
		return false
	}

	updated := CloneBlock(textBlock).(*TextBlock)
	updated.Content += token
	next := cloneList(e.blocks)
	next[i] = updated
	e.blocks = next
	e.pushHistory()
	return true
}

// MergeBlockStyle shallow-merges a style override into a block's style.
// Applies uniformly across kinds, except spacer which carries no style.
func (e *Editor) MergeBlockStyle(id string, override BlockStyle) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	if _, isSpacer := e.blocks[i].(*SpacerBlock); isSpacer {
		return false
	}

	updated := CloneBlock(e.blocks[i])
	updated.SetStyle(updated.GetStyle().Merge(override))
	next := cloneList(e.blocks)
	next[i] = updated
	e.blocks = next
	e.pushHistory()
	return true
}

// AddSocialLink appends a link for the first platform not already used
// by the block. When every platform is taken the add is a no-op.
func (e *Editor) AddSocialLink(id string) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	socialBlock, ok := e.blocks[i].(*SocialBlock)
	if !ok {
		return false
	}

	available := AvailablePlatforms(socialBlock.Links)
	if len(available) == 0 {
		return false
	}

	updated := CloneBlock(socialBlock).(*SocialBlock)
	platform := available[0]
	updated.Links = append(updated.Links, SocialLink{
		Platform: platform,
		URL:      "https://" + string(platform) + ".com",
	})
	next := cloneList(e.blocks)
	next[i] = updated
	e.blocks = next
	e.pushHistory()
	return true
}

// ApplyColumnLayout switches a columns block to one of the fixed layout
// presets, preserving retained columns' nested blocks by position and
// silently discarding the surplus.
func (e *Editor) ApplyColumnLayout(id, layoutID string) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	columnsBlock, ok := e.blocks[i].(*ColumnsBlock)
	if !ok {
		return false
	}
	layout, ok := ColumnLayoutByID(layoutID)
	if !ok {
		return false
	}

	updated := CloneBlock(columnsBlock).(*ColumnsBlock)
	updated.Columns = ApplyColumnLayout(columnsBlock.Columns, layout)
	next := cloneList(e.blocks)
	next[i] = updated
	e.blocks = next
	e.pushHistory()
	return true
}

// ApplyUpload applies a finished image upload to the block it was
// started for. The target id is captured at upload start, so a response
// arriving after the block was deleted, or after the selection moved on,
// is a silent no-op rather than an error or a write to the wrong block.
func (e *Editor) ApplyUpload(blockID, url string) bool {
	i := e.indexOf(blockID)
	if i < 0 {
		return false
	}
	imageBlock, ok := e.blocks[i].(*ImageBlock)
	if !ok {
		return false
	}

	updated := CloneBlock(imageBlock).(*ImageBlock)
	updated.Src = url
	next := cloneList(e.blocks)
	next[i] = updated
	e.blocks = next
	e.pushHistory()
	return true
}

// Undo steps back one history entry. A no-op at the initial snapshot.
func (e *Editor) Undo() bool {
	if e.historyIndex <= 0 {
		return false
	}
	e.historyIndex--
	e.restore(e.history[e.historyIndex])
	return true
}

// Redo steps forward one history entry. A no-op at the latest state.
func (e *Editor) Redo() bool {
	if e.historyIndex >= len(e.history)-1 {
		return false
	}
	e.historyIndex++
	e.restore(e.history[e.historyIndex])
	return true
}

func (e *Editor) CanUndo() bool {
	return e.historyIndex > 0
}

func (e *Editor) CanRedo() bool {
	return e.historyIndex < len(e.history)-1
}

// ExportHTML serializes the current document through the block renderer.
func (e *Editor) ExportHTML() string {
	return RenderHTML(e.blocks, e.globalStyle)
}

// ExportPlainText derives the text part from the serialized document.
func (e *Editor) ExportPlainText() string {
	return ToPlainText(e.ExportHTML())
}

// pushHistory appends the current state as a new snapshot, discarding
// any redo entries beyond the current index first. The discarded future
// is gone for good.
func (e *Editor) pushHistory() {
	e.history = append(e.history[:e.historyIndex+1], snapshot{
		blocks:      CloneBlocks(e.blocks),
		globalStyle: e.globalStyle,
	})
	e.historyIndex = len(e.history) - 1
}

// restore replaces the live state with a deep copy of a snapshot, so
// later mutations never alias history entries.
func (e *Editor) restore(snap snapshot) {
	e.blocks = CloneBlocks(snap.blocks)
	e.globalStyle = snap.globalStyle
}

func (e *Editor) indexOf(id string) int {
	for i, block := range e.blocks {
		if block.GetID() == id {
			return i
		}
	}
	return -1
}

// cloneList shallow-copies the list container. Entries are replaced
// wholesale on edit, never mutated in place, so sharing them is safe.
func cloneList(blocks []Block) []Block {
	next := make([]Block, len(blocks))
	copy(next, blocks)
	return next
}

// cloneWithNewIDs deep-clones a block and regenerates every id inside
// it, so a duplicate can never collide with its source.
func cloneWithNewIDs(block Block) Block {
	clone := CloneBlock(block)
	clone.SetID(uuid.New().String())
	if columnsBlock, ok := clone.(*ColumnsBlock); ok {
		for i := range columnsBlock.Columns {
			columnsBlock.Columns[i].ID = uuid.New().String()
			for j, nested := range columnsBlock.Columns[i].Blocks {
				columnsBlock.Columns[i].Blocks[j] = cloneWithNewIDs(nested)
			}
		}
	}
	return clone
}
