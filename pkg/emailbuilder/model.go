package emailbuilder

import (
	"encoding/json"
	"fmt"
)

// BlockType represents the available email block kinds
type BlockType string

const (
	BlockTypeText    BlockType = "text"
	BlockTypeHeading BlockType = "heading"
	BlockTypeImage   BlockType = "image"
	BlockTypeButton  BlockType = "button"
	BlockTypeDivider BlockType = "divider"
	BlockTypeSpacer  BlockType = "spacer"
	BlockTypeColumns BlockType = "columns"
	BlockTypeSocial  BlockType = "social"
	BlockTypeFooter  BlockType = "footer"
)

// BlockTypes lists every block kind in palette order.
var BlockTypes = []BlockType{
	BlockTypeText,
	BlockTypeHeading,
	BlockTypeImage,
	BlockTypeButton,
	BlockTypeDivider,
	BlockTypeSpacer,
	BlockTypeColumns,
	BlockTypeSocial,
	BlockTypeFooter,
}

func (t BlockType) Validate() error {
	for _, known := range BlockTypes {
		if t == known {
			return nil
		}
	}
	return fmt.Errorf("invalid block type: %s", t)
}

// BlockStyle holds the per-block style overrides. Fields are sparse: an
// empty field means "use the kind default at render time", the stored
// block stays minimal.
type BlockStyle struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Color           string `json:"color,omitempty"`
	FontSize        string `json:"fontSize,omitempty"`
	FontWeight      string `json:"fontWeight,omitempty"`
	TextAlign       string `json:"textAlign,omitempty"` // left, center, right
	Padding         string `json:"padding,omitempty"`
	Margin          string `json:"margin,omitempty"`
	BorderRadius    string `json:"borderRadius,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`
	BorderWidth     string `json:"borderWidth,omitempty"`
}

// Merge returns a copy of s with every non-empty field of override applied.
func (s *BlockStyle) Merge(override BlockStyle) *BlockStyle {
	merged := BlockStyle{}
	if s != nil {
		merged = *s
	}
	if override.BackgroundColor != "" {
		merged.BackgroundColor = override.BackgroundColor
	}
	if override.Color != "" {
		merged.Color = override.Color
	}
	if override.FontSize != "" {
		merged.FontSize = override.FontSize
	}
	if override.FontWeight != "" {
		merged.FontWeight = override.FontWeight
	}
	if override.TextAlign != "" {
		merged.TextAlign = override.TextAlign
	}
	if override.Padding != "" {
		merged.Padding = override.Padding
	}
	if override.Margin != "" {
		merged.Margin = override.Margin
	}
	if override.BorderRadius != "" {
		merged.BorderRadius = override.BorderRadius
	}
	if override.BorderColor != "" {
		merged.BorderColor = override.BorderColor
	}
	if override.BorderWidth != "" {
		merged.BorderWidth = override.BorderWidth
	}
	return &merged
}

// GlobalStyle holds document-wide rendering parameters, distinct from any
// single block's style.
type GlobalStyle struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty"`
	ContentWidth    string `json:"contentWidth,omitempty"`
}

// Block is the interface implemented by every email block kind
type Block interface {
	GetID() string
	SetID(string)
	GetType() BlockType
	GetStyle() *BlockStyle
	SetStyle(*BlockStyle)
}

// BaseBlock carries the fields shared by all block kinds
type BaseBlock struct {
	ID    string      `json:"id"`
	Type  BlockType   `json:"type"`
	Style *BlockStyle `json:"style,omitempty"`
}

func (b *BaseBlock) GetID() string {
	if b == nil {
		return ""
	}
	return b.ID
}

func (b *BaseBlock) SetID(id string) {
	if b != nil {
		b.ID = id
	}
}

func (b *BaseBlock) GetType() BlockType {
	if b == nil {
		return ""
	}
	return b.Type
}

func (b *BaseBlock) GetStyle() *BlockStyle {
	if b == nil {
		return nil
	}
	return b.Style
}

func (b *BaseBlock) SetStyle(style *BlockStyle) {
	if b != nil {
		b.Style = style
	}
}

// TextBlock holds a raw HTML fragment, possibly containing {{token}}
// personalization placeholders left unresolved until send time.
type TextBlock struct {
	BaseBlock
	Content string `json:"content"`
}

type HeadingBlock struct {
	BaseBlock
	Content string `json:"content"`
	Level   int    `json:"level"` // 1, 2 or 3
}

type ImageBlock struct {
	BaseBlock
	Src    string `json:"src"`
	Alt    string `json:"alt,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
	Link   string `json:"link,omitempty"`
}

// ButtonStyle is the button-specific appearance, distinct from the
// generic per-block style.
type ButtonStyle struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Color           string `json:"color,omitempty"`
	BorderRadius    string `json:"borderRadius,omitempty"`
	Padding         string `json:"padding,omitempty"`
}

type ButtonBlock struct {
	BaseBlock
	Text        string       `json:"text"`
	Link        string       `json:"link"`
	ButtonStyle *ButtonStyle `json:"buttonStyle,omitempty"`
}

type DividerBlock struct {
	BaseBlock
	LineStyle string `json:"lineStyle,omitempty"` // solid, dashed, dotted
	LineColor string `json:"lineColor,omitempty"`
	LineWidth string `json:"lineWidth,omitempty"`
}

// SpacerBlock carries no style, only a fixed height.
type SpacerBlock struct {
	BaseBlock
	Height string `json:"height"`
}

// Column is one vertical slice of a ColumnsBlock: a mini canvas owning
// its own ordered block list by value.
type Column struct {
	ID     string  `json:"id"`
	Width  string  `json:"width"` // percentage string, e.g. "50%"
	Blocks []Block `json:"blocks"`
}

// UnmarshalJSON dispatches the nested block list through UnmarshalBlock
func (c *Column) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     string            `json:"id"`
		Width  string            `json:"width"`
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = raw.ID
	c.Width = raw.Width
	c.Blocks = make([]Block, len(raw.Blocks))
	for i, blockData := range raw.Blocks {
		block, err := UnmarshalBlock(blockData)
		if err != nil {
			return fmt.Errorf("failed to unmarshal column block at index %d: %w", i, err)
		}
		c.Blocks[i] = block
	}
	return nil
}

// MarshalJSON keeps an empty nested list as [] rather than null so the
// stored shape round-trips.
func (c Column) MarshalJSON() ([]byte, error) {
	blocks := c.Blocks
	if blocks == nil {
		blocks = []Block{}
	}
	return json.Marshal(struct {
		ID     string  `json:"id"`
		Width  string  `json:"width"`
		Blocks []Block `json:"blocks"`
	}{ID: c.ID, Width: c.Width, Blocks: blocks})
}

type ColumnsBlock struct {
	BaseBlock
	Columns []Column `json:"columns"`
}

// SocialPlatform identifies a supported social network
type SocialPlatform string

const (
	SocialPlatformFacebook  SocialPlatform = "facebook"
	SocialPlatformTwitter   SocialPlatform = "twitter"
	SocialPlatformInstagram SocialPlatform = "instagram"
	SocialPlatformLinkedin  SocialPlatform = "linkedin"
	SocialPlatformYoutube   SocialPlatform = "youtube"
)

type SocialLink struct {
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url"`
}

type SocialBlock struct {
	BaseBlock
	Links     []SocialLink `json:"links"`
	IconSize  string       `json:"iconSize,omitempty"`
	IconStyle string       `json:"iconStyle,omitempty"`
}

type FooterBlock struct {
	BaseBlock
	CompanyName     string `json:"companyName,omitempty"`
	Address         string `json:"address,omitempty"`
	UnsubscribeText string `json:"unsubscribeText,omitempty"`
	UnsubscribeLink string `json:"unsubscribeLink,omitempty"`
}

// blockEnvelope is the minimal shape needed to pick the concrete type
type blockEnvelope struct {
	Type BlockType `json:"type"`
}

// UnmarshalBlock decodes a single block from JSON, dispatching on the
// type discriminant.
func UnmarshalBlock(data []byte) (Block, error) {
	var envelope blockEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block envelope: %w", err)
	}

	var block Block
	switch envelope.Type {
	case BlockTypeText:
		block = &TextBlock{}
	case BlockTypeHeading:
		block = &HeadingBlock{}
	case BlockTypeImage:
		block = &ImageBlock{}
	case BlockTypeButton:
		block = &ButtonBlock{}
	case BlockTypeDivider:
		block = &DividerBlock{}
	case BlockTypeSpacer:
		block = &SpacerBlock{}
	case BlockTypeColumns:
		block = &ColumnsBlock{}
	case BlockTypeSocial:
		block = &SocialBlock{}
	case BlockTypeFooter:
		block = &FooterBlock{}
	default:
		return nil, fmt.Errorf("unknown block type: %s", envelope.Type)
	}

	if err := json.Unmarshal(data, block); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s block: %w", envelope.Type, err)
	}
	return block, nil
}

// UnmarshalBlocks decodes an ordered block list from a JSON array
func UnmarshalBlocks(data []byte) ([]Block, error) {
	var rawBlocks []json.RawMessage
	if err := json.Unmarshal(data, &rawBlocks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block list: %w", err)
	}

	blocks := make([]Block, len(rawBlocks))
	for i, rawBlock := range rawBlocks {
		block, err := UnmarshalBlock(rawBlock)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal block at index %d: %w", i, err)
		}
		blocks[i] = block
	}
	return blocks, nil
}

// MarshalBlocks encodes an ordered block list to a JSON array
func MarshalBlocks(blocks []Block) ([]byte, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	return json.Marshal(blocks)
}

// CloneBlock returns a deep copy of a block, keeping the same id. The
// single type switch keeps the per-kind copy rules in one place.
func CloneBlock(block Block) Block {
	if block == nil {
		return nil
	}

	switch b := block.(type) {
	case *TextBlock:
		clone := *b
		clone.Style = cloneStyle(b.Style)
		return &clone
	case *HeadingBlock:
		clone := *b
		clone.Style = cloneStyle(b.Style)
		return &clone
	case *ImageBlock:
		clone := *b
		clone.Style = cloneStyle(b.Style)
		return &clone
	case *ButtonBlock:
		clone := *b
		clone.Style = cloneStyle(b.Style)
		if b.ButtonStyle != nil {
			buttonStyle := *b.ButtonStyle
			clone.ButtonStyle = &buttonStyle
		}
		return &clone
	case *DividerBlock:
		clone := *b
		clone.Style = cloneStyle(b.Style)
		return &clone
	case *SpacerBlock:
		clone := *b
		return &clone
	case *ColumnsBlock:
		clone := *b
		clone.Style = cloneStyle(b.Style)
		clone.Columns = make([]Column, len(b.Columns))
		for i, col := range b.Columns {
			cloned := Column{ID: col.ID, Width: col.Width, Blocks: CloneBlocks(col.Blocks)}
			clone.Columns[i] = cloned
		}
		return &clone
	case *SocialBlock:
		clone := *b
		clone.Style = cloneStyle(b.Style)
		clone.Links = make([]SocialLink, len(b.Links))
		copy(clone.Links, b.Links)
		return &clone
	case *FooterBlock:
		clone := *b
		clone.Style = cloneStyle(b.Style)
		return &clone
	default:
		return block
	}
}

// CloneBlocks deep-copies an ordered block list
func CloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	cloned := make([]Block, len(blocks))
	for i, block := range blocks {
		cloned[i] = CloneBlock(block)
	}
	return cloned
}

func cloneStyle(style *BlockStyle) *BlockStyle {
	if style == nil {
		return nil
	}
	clone := *style
	return &clone
}
