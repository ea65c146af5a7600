package domain

import (
	"bytes"
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/donorflow/donorflow/pkg/emailbuilder"
)

type TemplateCategory string

const (
	TemplateCategoryNewsletter TemplateCategory = "newsletter"
	TemplateCategoryAppeal     TemplateCategory = "appeal"
	TemplateCategoryReceipt    TemplateCategory = "receipt"
	TemplateCategoryWelcome    TemplateCategory = "welcome"
	TemplateCategoryEvent      TemplateCategory = "event"
	TemplateCategoryOther      TemplateCategory = "other"
)

func (c TemplateCategory) Validate() error {
	switch c {
	case TemplateCategoryNewsletter, TemplateCategoryAppeal, TemplateCategoryReceipt,
		TemplateCategoryWelcome, TemplateCategoryEvent, TemplateCategoryOther:
		return nil
	}
	return fmt.Errorf("invalid template category: %s", c)
}

// BlockList is an ordered block list stored as a JSON column. Ordering
// is significant: it is exactly the vertical stacking order of the
// rendered email.
type BlockList []emailbuilder.Block

func (l BlockList) MarshalJSON() ([]byte, error) {
	return emailbuilder.MarshalBlocks(l)
}

func (l *BlockList) UnmarshalJSON(data []byte) error {
	blocks, err := emailbuilder.UnmarshalBlocks(data)
	if err != nil {
		return err
	}
	*l = blocks
	return nil
}

// Value implements the driver.Valuer interface for database storage
func (l BlockList) Value() (driver.Value, error) {
	return l.MarshalJSON()
}

// Scan implements the sql.Scanner interface for database retrieval
func (l *BlockList) Scan(val interface{}) error {
	var data []byte
	if b, ok := val.([]byte); ok {
		// The sql driver reuses the byte slice between rows, clone it.
		data = bytes.Clone(b)
	} else if s, ok := val.(string); ok {
		data = []byte(s)
	} else if val == nil {
		return nil
	} else {
		return fmt.Errorf("type assertion failed for BlockList")
	}
	return l.UnmarshalJSON(data)
}

// StyleSettings is the document-wide style stored as a JSON column.
type StyleSettings emailbuilder.GlobalStyle

func (s StyleSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *StyleSettings) Scan(val interface{}) error {
	var data []byte
	if b, ok := val.([]byte); ok {
		data = bytes.Clone(b)
	} else if str, ok := val.(string); ok {
		data = []byte(str)
	} else if val == nil {
		return nil
	} else {
		return fmt.Errorf("type assertion failed for StyleSettings")
	}
	return json.Unmarshal(data, s)
}

// EmailTemplate is the persisted template aggregate: the ordered block
// list plus the document-wide style.
type EmailTemplate struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category,omitempty"`
	Blocks      BlockList     `json:"blocks"`
	GlobalStyle StyleSettings `json:"globalStyle,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (t *EmailTemplate) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("invalid template: id is required")
	}
	if len(t.ID) > 64 {
		return fmt.Errorf("invalid template: id length must be between 1 and 64")
	}
	if t.Name == "" {
		return fmt.Errorf("invalid template: name is required")
	}
	if len(t.Name) > 255 {
		return fmt.Errorf("invalid template: name length must be between 1 and 255")
	}
	if t.Category != "" {
		if err := TemplateCategory(t.Category).Validate(); err != nil {
			return fmt.Errorf("invalid template: %w", err)
		}
	}
	if t.Blocks == nil {
		t.Blocks = BlockList{}
	}
	for i, block := range t.Blocks {
		if block == nil {
			return fmt.Errorf("invalid template: block at index %d is empty", i)
		}
		if err := block.GetType().Validate(); err != nil {
			return fmt.Errorf("invalid template: %w", err)
		}
		if err := validateBlockLinks(block); err != nil {
			return fmt.Errorf("invalid template: %w", err)
		}
	}
	return nil
}

// validateBlockLinks rejects plainly malformed URLs. Hash anchors and
// {{token}} placeholders are legitimate editor states and pass through.
func validateBlockLinks(block emailbuilder.Block) error {
	check := func(field, link string) error {
		if link == "" || link == "#" || strings.Contains(link, "{{") {
			return nil
		}
		if !govalidator.IsURL(link) {
			return fmt.Errorf("%s is not a valid URL: %s", field, link)
		}
		return nil
	}

	switch b := block.(type) {
	case *emailbuilder.ButtonBlock:
		return check("button link", b.Link)
	case *emailbuilder.ImageBlock:
		return check("image link", b.Link)
	case *emailbuilder.FooterBlock:
		return check("unsubscribe link", b.UnsubscribeLink)
	case *emailbuilder.ColumnsBlock:
		for _, column := range b.Columns {
			for _, nested := range column.Blocks {
				if err := validateBlockLinks(nested); err != nil {
					return err
				}
			}
		}
	case *emailbuilder.SocialBlock:
		for _, link := range b.Links {
			if err := check("social link", link.URL); err != nil {
				return err
			}
		}
	}
	return nil
}

type CreateTemplateRequest struct {
	ID          string        `json:"id,omitempty"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category,omitempty"`
	Blocks      BlockList     `json:"blocks"`
	GlobalStyle StyleSettings `json:"globalStyle,omitempty"`
}

func (r *CreateTemplateRequest) Validate() (*EmailTemplate, error) {
	template := &EmailTemplate{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Blocks:      r.Blocks,
		GlobalStyle: r.GlobalStyle,
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}
	return template, nil
}

type UpdateTemplateRequest struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category,omitempty"`
	Blocks      BlockList     `json:"blocks"`
	GlobalStyle StyleSettings `json:"globalStyle,omitempty"`
}

func (r *UpdateTemplateRequest) Validate() (*EmailTemplate, error) {
	template := &EmailTemplate{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Blocks:      r.Blocks,
		GlobalStyle: r.GlobalStyle,
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}
	return template, nil
}

type GetTemplateRequest struct {
	ID string
}

func (r *GetTemplateRequest) FromURLParams(values url.Values) error {
	r.ID = values.Get("id")
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}

type ListTemplatesRequest struct {
	Category string
}

func (r *ListTemplatesRequest) FromURLParams(values url.Values) error {
	r.Category = values.Get("category")
	if r.Category != "" {
		if err := TemplateCategory(r.Category).Validate(); err != nil {
			return err
		}
	}
	return nil
}

type DeleteTemplateRequest struct {
	ID string `json:"id"`
}

func (r *DeleteTemplateRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}

// CompileTemplateRequest asks for a preview compilation of an inline
// block document, optionally resolving personalization tokens against
// test data.
type CompileTemplateRequest struct {
	Blocks      BlockList             `json:"blocks"`
	GlobalStyle StyleSettings         `json:"globalStyle,omitempty"`
	TestData    emailbuilder.MapOfAny `json:"testData,omitempty"`
}

func (r *CompileTemplateRequest) Validate() error {
	for i, block := range r.Blocks {
		if block == nil {
			return fmt.Errorf("invalid compile request: block at index %d is empty", i)
		}
		if err := block.GetType().Validate(); err != nil {
			return fmt.Errorf("invalid compile request: %w", err)
		}
	}
	return nil
}

// SendTestTemplateRequest asks to compile a stored template and deliver
// it to a single recipient.
type SendTestTemplateRequest struct {
	ID       string                `json:"id"`
	To       string                `json:"to"`
	TestData emailbuilder.MapOfAny `json:"testData,omitempty"`
}

func (r *SendTestTemplateRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if r.To == "" {
		return fmt.Errorf("to is required")
	}
	if !govalidator.IsEmail(r.To) {
		return fmt.Errorf("to is not a valid email: %s", r.To)
	}
	return nil
}

// UploadResult is the outcome of an image upload. BlockID echoes the
// target captured when the upload started, so a late response can be
// matched against the block it was meant for.
type UploadResult struct {
	BlockID string `json:"blockId"`
	URL     string `json:"url"`
}

type TemplateRepository interface {
	CreateTemplate(ctx context.Context, template *EmailTemplate) error
	GetTemplateByID(ctx context.Context, id string) (*EmailTemplate, error)
	ListTemplates(ctx context.Context, category string) ([]*EmailTemplate, error)
	UpdateTemplate(ctx context.Context, template *EmailTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
}

type TemplateService interface {
	CreateTemplate(ctx context.Context, template *EmailTemplate) error
	GetTemplateByID(ctx context.Context, id string) (*EmailTemplate, error)
	ListTemplates(ctx context.Context, category string) ([]*EmailTemplate, error)
	UpdateTemplate(ctx context.Context, template *EmailTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	CompileTemplate(ctx context.Context, req CompileTemplateRequest) (*emailbuilder.CompileResponse, error)
	SendTestTemplate(ctx context.Context, req SendTestTemplateRequest) error
}
