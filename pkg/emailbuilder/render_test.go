package emailbuilder

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderHTMLDocumentShell(t *testing.T) {
	html := RenderHTML(nil, GlobalStyle{})

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<meta name="viewport"`)
	assert.Contains(t, html, "<!--[if mso]>")
	assert.Contains(t, html, "<o:PixelsPerInch>96</o:PixelsPerInch>")
	assert.Contains(t, html, `width="600"`)
	assert.Contains(t, html, DefaultBackgroundColor)
	assert.Contains(t, html, DefaultFontFamily)
}

func TestRenderHTMLIsIdempotent(t *testing.T) {
	blocks := []Block{
		NewBlock(BlockTypeHeading),
		NewBlock(BlockTypeText),
		NewBlock(BlockTypeButton),
		NewBlock(BlockTypeColumns),
		NewBlock(BlockTypeSocial),
		NewBlock(BlockTypeFooter),
	}
	globalStyle := GlobalStyle{ContentWidth: "520px", BackgroundColor: "#eeeeee"}

	first := RenderHTML(blocks, globalStyle)
	second := RenderHTML(blocks, globalStyle)
	assert.Equal(t, first, second)
}

func TestRenderHTMLGlobalStyleOverrides(t *testing.T) {
	html := RenderHTML(nil, GlobalStyle{
		ContentWidth:    "480px",
		BackgroundColor: "#101010",
		FontFamily:      "Georgia, serif",
	})

	assert.Contains(t, html, `width="480"`)
	assert.Contains(t, html, "width: 480px")
	assert.Contains(t, html, "#101010")
	assert.Contains(t, html, "Georgia, serif")
}

func TestRenderTextBlock(t *testing.T) {
	block := &TextBlock{
		BaseBlock: BaseBlock{ID: "t1", Type: BlockTypeText},
		Content:   `<p>Hello <strong>{{first_name}}</strong></p>`,
	}

	html := RenderHTML([]Block{block}, GlobalStyle{})

	// Content is trusted author HTML, emitted verbatim with its markup
	// and unresolved tokens.
	assert.Contains(t, html, `<p>Hello <strong>{{first_name}}</strong></p>`)
	assert.Contains(t, html, "padding: 10px 20px")
	assert.Contains(t, html, "text-align: left")
	assert.Contains(t, html, "font-size: 16px")
	assert.Contains(t, html, "color: #333333")
	assert.Contains(t, html, "line-height: 1.6")
}

func TestRenderHeadingLevels(t *testing.T) {
	tests := []struct {
		level    int
		tag      string
		fontSize string
	}{
		{1, "h1", "32px"},
		{2, "h2", "24px"},
		{3, "h3", "20px"},
		{7, "h2", "24px"}, // out of range falls back to level 2
	}

	for _, tt := range tests {
		block := &HeadingBlock{
			BaseBlock: BaseBlock{ID: "h", Type: BlockTypeHeading},
			Content:   "Merci & bienvenue",
			Level:     tt.level,
		}
		html := RenderHTML([]Block{block}, GlobalStyle{})
		doc := parseHTML(t, html)

		heading := doc.Find(tt.tag)
		require.Equal(t, 1, heading.Length(), "level %d", tt.level)
		assert.Equal(t, "Merci & bienvenue", heading.Text())

		headingStyle, _ := heading.Attr("style")
		assert.Contains(t, headingStyle, "font-size: "+tt.fontSize)
		assert.Contains(t, headingStyle, "font-weight: bold")
		assert.Contains(t, headingStyle, "color: #1a1a1a")
	}
}

func TestRenderImageBlock(t *testing.T) {
	block := &ImageBlock{
		BaseBlock: BaseBlock{ID: "i1", Type: BlockTypeImage},
		Src:       "https://cdn.example.org/banner.png",
		Alt:       "Campaign banner",
	}

	doc := parseHTML(t, RenderHTML([]Block{block}, GlobalStyle{}))
	img := doc.Find("img")
	require.Equal(t, 1, img.Length())
	src, _ := img.Attr("src")
	assert.Equal(t, "https://cdn.example.org/banner.png", src)
	width, _ := img.Attr("width")
	assert.Equal(t, "100%", width)
	// No link, no anchor wrapper.
	assert.Equal(t, 0, doc.Find("a").Length())

	block.Link = "https://example.org/campaign"
	doc = parseHTML(t, RenderHTML([]Block{block}, GlobalStyle{}))
	anchor := doc.Find("a")
	require.Equal(t, 1, anchor.Length())
	href, _ := anchor.Attr("href")
	assert.Equal(t, "https://example.org/campaign", href)
	assert.Equal(t, 1, anchor.Find("img").Length())
}

func TestRenderButtonBlock(t *testing.T) {
	block := &ButtonBlock{
		BaseBlock: BaseBlock{ID: "b1", Type: BlockTypeButton},
		Text:      "Give today",
		Link:      "https://example.org/give",
	}

	html := RenderHTML([]Block{block}, GlobalStyle{})
	doc := parseHTML(t, html)

	anchor := doc.Find("a")
	require.Equal(t, 1, anchor.Length())
	assert.Equal(t, "Give today", anchor.Text())
	href, _ := anchor.Attr("href")
	assert.Equal(t, "https://example.org/give", href)

	anchorStyle, _ := anchor.Attr("style")
	assert.Contains(t, anchorStyle, "background-color: #4f46e5")
	assert.Contains(t, anchorStyle, "color: #ffffff")
	assert.Contains(t, anchorStyle, "border-radius: 6px")
	assert.Contains(t, anchorStyle, "padding: 12px 24px")
	assert.Contains(t, anchorStyle, "font-weight: bold")
	assert.Contains(t, anchorStyle, "text-decoration: none")
	// Anchor styled as a button, never a form control.
	assert.Equal(t, 0, doc.Find("button").Length())
}

func TestRenderDividerDefaults(t *testing.T) {
	block := &DividerBlock{BaseBlock: BaseBlock{ID: "d1", Type: BlockTypeDivider}}

	doc := parseHTML(t, RenderHTML([]Block{block}, GlobalStyle{}))
	hr := doc.Find("hr")
	require.Equal(t, 1, hr.Length())
	hrStyle, _ := hr.Attr("style")
	assert.Contains(t, hrStyle, "border: none")
	assert.Contains(t, hrStyle, "border-top: 1px solid #e5e7eb")
}

func TestRenderSpacerBlock(t *testing.T) {
	block := &SpacerBlock{
		BaseBlock: BaseBlock{ID: "s1", Type: BlockTypeSpacer},
		Height:    "48px",
	}

	html := RenderHTML([]Block{block}, GlobalStyle{})
	assert.Contains(t, html, "height: 48px")
	assert.Contains(t, html, "font-size: 0")
	assert.Contains(t, html, "line-height: 0")
	assert.Contains(t, html, "&nbsp;")
}

func TestRenderColumnsBlock(t *testing.T) {
	text := &TextBlock{
		BaseBlock: BaseBlock{ID: "t1", Type: BlockTypeText},
		Content:   "<p>left side</p>",
	}
	block := &ColumnsBlock{
		BaseBlock: BaseBlock{ID: "c1", Type: BlockTypeColumns},
		Columns: []Column{
			{ID: "col1", Width: "50%", Blocks: []Block{text}},
			{ID: "col2", Width: "50%", Blocks: nil},
		},
	}

	html := RenderHTML([]Block{block}, GlobalStyle{})
	doc := parseHTML(t, html)

	cells := doc.Find(`td[valign="top"]`)
	require.Equal(t, 2, cells.Length())
	width, _ := cells.First().Attr("width")
	assert.Equal(t, "50%", width)
	assert.Contains(t, html, "<p>left side</p>")
	// The empty column renders a placeholder cell so the layout keeps
	// its width.
	assert.Equal(t, 1, cells.Last().Find("td").Length())
}

func TestRenderSocialBlock(t *testing.T) {
	block := &SocialBlock{
		BaseBlock: BaseBlock{ID: "s1", Type: BlockTypeSocial},
		Links: []SocialLink{
			{Platform: SocialPlatformFacebook, URL: "https://facebook.com/acme"},
			{Platform: SocialPlatformYoutube, URL: "https://youtube.com/@acme"},
		},
	}

	doc := parseHTML(t, RenderHTML([]Block{block}, GlobalStyle{}))
	anchors := doc.Find("a")
	require.Equal(t, 2, anchors.Length())

	firstHref, _ := anchors.First().Attr("href")
	assert.Equal(t, "https://facebook.com/acme", firstHref)

	icons := doc.Find("img")
	require.Equal(t, 2, icons.Length())
	iconWidth, _ := icons.First().Attr("width")
	assert.Equal(t, "32", iconWidth)
	iconSrc, _ := icons.First().Attr("src")
	assert.Equal(t, SocialIconURL(SocialPlatformFacebook), iconSrc)
}

func TestRenderFooterOmitsEmptyLines(t *testing.T) {
	block := &FooterBlock{
		BaseBlock:       BaseBlock{ID: "f1", Type: BlockTypeFooter},
		CompanyName:     "Acme Giving",
		UnsubscribeLink: "https://example.org/unsubscribe",
	}

	html := RenderHTML([]Block{block}, GlobalStyle{})
	doc := parseHTML(t, html)

	paragraphs := doc.Find("td p")
	// Company and unsubscribe lines only, the empty address line is
	// omitted entirely.
	require.Equal(t, 2, paragraphs.Length())
	assert.Equal(t, "Acme Giving", paragraphs.First().Text())

	anchor := doc.Find("a")
	require.Equal(t, 1, anchor.Length())
	assert.Equal(t, "Unsubscribe", anchor.Text())
	href, _ := anchor.Attr("href")
	assert.Equal(t, "https://example.org/unsubscribe", href)
}

func TestRenderBlocksInListOrder(t *testing.T) {
	heading := &HeadingBlock{BaseBlock: BaseBlock{ID: "h", Type: BlockTypeHeading}, Content: "First", Level: 1}
	text := &TextBlock{BaseBlock: BaseBlock{ID: "t", Type: BlockTypeText}, Content: "<p>Second</p>"}

	html := RenderHTML([]Block{heading, text}, GlobalStyle{})
	assert.Less(t, strings.Index(html, "First"), strings.Index(html, "Second"))

	reversed := RenderHTML([]Block{text, heading}, GlobalStyle{})
	assert.Less(t, strings.Index(reversed, "Second"), strings.Index(reversed, "First"))
}
