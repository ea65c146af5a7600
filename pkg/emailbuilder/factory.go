package emailbuilder

import (
	"github.com/google/uuid"
)

// NewBlock creates a block of the given kind with a fresh id and the
// kind's default payload. Ids are random so snapshots duplicated through
// undo/redo can never collide with a later creation.
func NewBlock(blockType BlockType) Block {
	base := BaseBlock{
		ID:   uuid.New().String(),
		Type: blockType,
	}

	switch blockType {
	case BlockTypeText:
		return &TextBlock{
			BaseBlock: base,
			Content:   "<p>Write your message here...</p>",
		}
	case BlockTypeHeading:
		return &HeadingBlock{
			BaseBlock: base,
			Content:   "Your heading",
			Level:     2,
		}
	case BlockTypeImage:
		return &ImageBlock{
			BaseBlock: base,
			Src:       "https://placehold.co/600x200",
			Alt:       "Image",
			Width:     "100%",
		}
	case BlockTypeButton:
		return &ButtonBlock{
			BaseBlock: base,
			Text:      "Donate now",
			Link:      "#",
			ButtonStyle: &ButtonStyle{
				BackgroundColor: "#4f46e5",
				Color:           "#ffffff",
				BorderRadius:    "6px",
				Padding:         "12px 24px",
			},
		}
	case BlockTypeDivider:
		return &DividerBlock{
			BaseBlock: base,
			LineStyle: "solid",
			LineColor: "#e5e7eb",
			LineWidth: "1px",
		}
	case BlockTypeSpacer:
		return &SpacerBlock{
			BaseBlock: BaseBlock{ID: base.ID, Type: blockType},
			Height:    "24px",
		}
	case BlockTypeColumns:
		return &ColumnsBlock{
			BaseBlock: base,
			Columns: []Column{
				{ID: uuid.New().String(), Width: "50%", Blocks: []Block{}},
				{ID: uuid.New().String(), Width: "50%", Blocks: []Block{}},
			},
		}
	case BlockTypeSocial:
		return &SocialBlock{
			BaseBlock: base,
			Links: []SocialLink{
				{Platform: SocialPlatformFacebook, URL: "https://facebook.com"},
				{Platform: SocialPlatformTwitter, URL: "https://twitter.com"},
			},
			IconSize: "32px",
		}
	case BlockTypeFooter:
		return &FooterBlock{
			BaseBlock:       base,
			CompanyName:     "Your Organization",
			Address:         "123 Main Street, City, Country",
			UnsubscribeText: "Unsubscribe",
			UnsubscribeLink: "{{unsubscribe_url}}",
		}
	default:
		// The enum is closed; an unknown kind can only come from
		// hand-built values, fall back to an empty text block.
		return &TextBlock{BaseBlock: BaseBlock{ID: base.ID, Type: BlockTypeText}}
	}
}

// PersonalizationVariable is a send-time substitution token offered by
// the editor's variable picker. Tokens stay unresolved in exported HTML,
// the sending pipeline substitutes them per recipient.
type PersonalizationVariable struct {
	Token       string `json:"token"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// PersonalizationVariables is the catalog shown by the variable picker.
var PersonalizationVariables = []PersonalizationVariable{
	{Token: "{{first_name}}", Label: "First name", Description: "Donor first name"},
	{Token: "{{last_name}}", Label: "Last name", Description: "Donor last name"},
	{Token: "{{email}}", Label: "Email", Description: "Donor email address"},
	{Token: "{{organization_name}}", Label: "Organization", Description: "Sending organization name"},
	{Token: "{{donation_amount}}", Label: "Donation amount", Description: "Most recent donation amount"},
	{Token: "{{campaign_name}}", Label: "Campaign", Description: "Active campaign name"},
	{Token: "{{current_date}}", Label: "Current date", Description: "Date at send time"},
	{Token: "{{unsubscribe_url}}", Label: "Unsubscribe URL", Description: "Per-recipient unsubscribe link"},
}
