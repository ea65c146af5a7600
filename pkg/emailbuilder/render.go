package emailbuilder

import (
	"fmt"
	"strings"
)

// Document-level render defaults, used when the global style leaves a
// field empty.
const (
	DefaultContentWidth    = "600px"
	DefaultBackgroundColor = "#f4f4f4"
	DefaultFontFamily      = "Arial, Helvetica, sans-serif"
)

// Per-kind render defaults. These are the contract: a sparse stored block
// always degrades to these exact literals.
const (
	defaultCellPadding   = "10px 20px"
	defaultTextColor     = "#333333"
	defaultTextFontSize  = "16px"
	defaultHeadingColor  = "#1a1a1a"
	defaultButtonBg      = "#4f46e5"
	defaultButtonColor   = "#ffffff"
	defaultButtonRadius  = "6px"
	defaultButtonPadding = "12px 24px"
	defaultDividerStyle  = "solid"
	defaultDividerColor  = "#e5e7eb"
	defaultDividerWidth  = "1px"
	defaultSpacerHeight  = "24px"
	defaultIconSize      = "32px"
	defaultFooterColor   = "#6b7280"
)

// headingFontSizes maps heading level to its font-size tier.
var headingFontSizes = map[int]string{
	1: "32px",
	2: "24px",
	3: "20px",
}

// RenderHTML serializes an ordered block list and a global style into a
// complete standalone email HTML document: an outer full-width table
// centering a fixed-width inner table whose rows are the blocks in list
// order. The output is deterministic, re-rendering an unchanged input
// yields byte-identical HTML.
func RenderHTML(blocks []Block, globalStyle GlobalStyle) string {
	contentWidth := orDefault(globalStyle.ContentWidth, DefaultContentWidth)
	backgroundColor := orDefault(globalStyle.BackgroundColor, DefaultBackgroundColor)
	fontFamily := orDefault(globalStyle.FontFamily, DefaultFontFamily)

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(`<html lang="en" xmlns="http://www.w3.org/1999/xhtml" xmlns:v="urn:schemas-microsoft-com:vml" xmlns:o="urn:schemas-microsoft-com:office:office">` + "\n")
	sb.WriteString("<head>\n")
	sb.WriteString(`<meta charset="utf-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	sb.WriteString("<!--[if mso]>\n")
	sb.WriteString("<noscript>\n<xml>\n<o:OfficeDocumentSettings>\n<o:PixelsPerInch>96</o:PixelsPerInch>\n</o:OfficeDocumentSettings>\n</xml>\n</noscript>\n")
	sb.WriteString("<![endif]-->\n")
	sb.WriteString("<style>\n")
	sb.WriteString("body, table, td { margin: 0; padding: 0; }\n")
	sb.WriteString("img { border: 0; line-height: 100%; outline: none; text-decoration: none; }\n")
	sb.WriteString("table { border-collapse: collapse; }\n")
	sb.WriteString("</style>\n")
	sb.WriteString("</head>\n")
	fmt.Fprintf(&sb, `<body style="margin: 0; padding: 0; background-color: %s; font-family: %s;">`+"\n", backgroundColor, fontFamily)
	fmt.Fprintf(&sb, `<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" style="background-color: %s;">`+"\n", backgroundColor)
	sb.WriteString("<tr><td align=\"center\">\n")
	fmt.Fprintf(&sb, `<table role="presentation" width="%s" cellpadding="0" cellspacing="0" style="width: %s; max-width: 100%%; background-color: #ffffff;">`+"\n", strings.TrimSuffix(contentWidth, "px"), contentWidth)

	for _, block := range blocks {
		sb.WriteString(renderBlockRow(block))
	}

	sb.WriteString("</table>\n")
	sb.WriteString("</td></tr>\n")
	sb.WriteString("</table>\n")
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// renderBlockRow emits one table row for a block. The type switch is the
// single emission table for all 9 kinds.
func renderBlockRow(block Block) string {
	if block == nil {
		return ""
	}

	switch b := block.(type) {
	case *TextBlock:
		return renderTextRow(b)
	case *HeadingBlock:
		return renderHeadingRow(b)
	case *ImageBlock:
		return renderImageRow(b)
	case *ButtonBlock:
		return renderButtonRow(b)
	case *DividerBlock:
		return renderDividerRow(b)
	case *SpacerBlock:
		return renderSpacerRow(b)
	case *ColumnsBlock:
		return renderColumnsRow(b)
	case *SocialBlock:
		return renderSocialRow(b)
	case *FooterBlock:
		return renderFooterRow(b)
	default:
		return ""
	}
}

func renderTextRow(b *TextBlock) string {
	style := styleOrEmpty(b.Style)
	cellStyle := fmt.Sprintf("padding: %s; background-color: %s; text-align: %s; font-size: %s; color: %s; line-height: 1.6;",
		orDefault(style.Padding, defaultCellPadding),
		orDefault(style.BackgroundColor, "transparent"),
		orDefault(style.TextAlign, "left"),
		orDefault(style.FontSize, defaultTextFontSize),
		orDefault(style.Color, defaultTextColor),
	)
	// Content is trusted author HTML and goes out verbatim, tokens and
	// markup included. Hosts displaying it in untrusted flows must
	// sanitize first.
	return fmt.Sprintf("<tr><td style=\"%s\">%s</td></tr>\n", cellStyle, b.Content)
}

func renderHeadingRow(b *HeadingBlock) string {
	level := b.Level
	if level < 1 || level > 3 {
		level = 2
	}
	fontSize := headingFontSizes[level]

	style := styleOrEmpty(b.Style)
	cellStyle := fmt.Sprintf("padding: %s; background-color: %s; text-align: %s;",
		orDefault(style.Padding, defaultCellPadding),
		orDefault(style.BackgroundColor, "transparent"),
		orDefault(style.TextAlign, "left"),
	)
	headingStyle := fmt.Sprintf("margin: 0; font-size: %s; font-weight: %s; color: %s;",
		orDefault(style.FontSize, fontSize),
		orDefault(style.FontWeight, "bold"),
		orDefault(style.Color, defaultHeadingColor),
	)
	return fmt.Sprintf("<tr><td style=\"%s\"><h%d style=\"%s\">%s</h%d></td></tr>\n",
		cellStyle, level, headingStyle, escapeHTML(b.Content), level)
}

func renderImageRow(b *ImageBlock) string {
	style := styleOrEmpty(b.Style)
	cellStyle := fmt.Sprintf("padding: %s; background-color: %s; text-align: %s;",
		orDefault(style.Padding, defaultCellPadding),
		orDefault(style.BackgroundColor, "transparent"),
		orDefault(style.TextAlign, "center"),
	)

	imgTag := fmt.Sprintf(`<img src="%s" alt="%s" width="%s"%s style="max-width: 100%%; display: inline-block; border: 0;">`,
		escapeAttribute(b.Src),
		escapeAttribute(b.Alt),
		escapeAttribute(strings.TrimSuffix(orDefault(b.Width, "100%"), "px")),
		imageHeightAttribute(b.Height),
	)
	if b.Link != "" {
		imgTag = fmt.Sprintf(`<a href="%s">%s</a>`, escapeAttribute(b.Link), imgTag)
	}
	return fmt.Sprintf("<tr><td style=\"%s\">%s</td></tr>\n", cellStyle, imgTag)
}

func imageHeightAttribute(height string) string {
	if height == "" {
		return ""
	}
	return fmt.Sprintf(` height="%s"`, escapeAttribute(strings.TrimSuffix(height, "px")))
}

func renderButtonRow(b *ButtonBlock) string {
	style := styleOrEmpty(b.Style)
	buttonStyle := ButtonStyle{}
	if b.ButtonStyle != nil {
		buttonStyle = *b.ButtonStyle
	}

	cellStyle := fmt.Sprintf("padding: %s; background-color: %s; text-align: %s;",
		orDefault(style.Padding, defaultCellPadding),
		orDefault(style.BackgroundColor, "transparent"),
		orDefault(style.TextAlign, "center"),
	)
	// Email clients cannot submit forms, the button is an anchor styled
	// as one.
	anchorStyle := fmt.Sprintf("display: inline-block; background-color: %s; color: %s; border-radius: %s; padding: %s; font-weight: bold; text-decoration: none;",
		orDefault(buttonStyle.BackgroundColor, defaultButtonBg),
		orDefault(buttonStyle.Color, defaultButtonColor),
		orDefault(buttonStyle.BorderRadius, defaultButtonRadius),
		orDefault(buttonStyle.Padding, defaultButtonPadding),
	)
	return fmt.Sprintf("<tr><td style=\"%s\"><a href=\"%s\" style=\"%s\">%s</a></td></tr>\n",
		cellStyle, escapeAttribute(b.Link), anchorStyle, escapeHTML(b.Text))
}

func renderDividerRow(b *DividerBlock) string {
	style := styleOrEmpty(b.Style)
	cellStyle := fmt.Sprintf("padding: %s;", orDefault(style.Padding, defaultCellPadding))
	hrStyle := fmt.Sprintf("border: none; border-top: %s %s %s; margin: 0;",
		orDefault(b.LineWidth, defaultDividerWidth),
		orDefault(b.LineStyle, defaultDividerStyle),
		orDefault(b.LineColor, defaultDividerColor),
	)
	return fmt.Sprintf("<tr><td style=\"%s\"><hr style=\"%s\"></td></tr>\n", cellStyle, hrStyle)
}

func renderSpacerRow(b *SpacerBlock) string {
	// The zero font-size trick keeps clients from collapsing the empty
	// cell.
	height := orDefault(b.Height, defaultSpacerHeight)
	return fmt.Sprintf("<tr><td style=\"height: %s; font-size: 0; line-height: 0;\">&nbsp;</td></tr>\n", height)
}

func renderColumnsRow(b *ColumnsBlock) string {
	style := styleOrEmpty(b.Style)
	cellStyle := fmt.Sprintf("padding: %s; background-color: %s;",
		orDefault(style.Padding, "0"),
		orDefault(style.BackgroundColor, "transparent"),
	)

	var sb strings.Builder
	fmt.Fprintf(&sb, "<tr><td style=\"%s\">\n", cellStyle)
	sb.WriteString(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0"><tr>` + "\n")
	for _, column := range b.Columns {
		fmt.Fprintf(&sb, `<td width="%s" valign="top">`+"\n", escapeAttribute(column.Width))
		if len(column.Blocks) == 0 {
			// Placeholder cell so an empty column keeps its width.
			sb.WriteString("<table role=\"presentation\" width=\"100%\" cellpadding=\"0\" cellspacing=\"0\"><tr><td style=\"font-size: 0; line-height: 0;\">&nbsp;</td></tr></table>\n")
		} else {
			sb.WriteString(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0">` + "\n")
			for _, nested := range column.Blocks {
				sb.WriteString(renderBlockRow(nested))
			}
			sb.WriteString("</table>\n")
		}
		sb.WriteString("</td>\n")
	}
	sb.WriteString("</tr></table>\n")
	sb.WriteString("</td></tr>\n")
	return sb.String()
}

func renderSocialRow(b *SocialBlock) string {
	style := styleOrEmpty(b.Style)
	cellStyle := fmt.Sprintf("padding: %s; text-align: %s;",
		orDefault(style.Padding, defaultCellPadding),
		orDefault(style.TextAlign, "center"),
	)
	iconSize := strings.TrimSuffix(orDefault(b.IconSize, defaultIconSize), "px")

	var sb strings.Builder
	fmt.Fprintf(&sb, "<tr><td style=\"%s\">", cellStyle)
	for _, link := range b.Links {
		iconURL := SocialIconURL(link.Platform)
		if iconURL == "" {
			continue
		}
		fmt.Fprintf(&sb, `<a href="%s" style="display: inline-block; margin: 0 6px;"><img src="%s" alt="%s" width="%s" height="%s" style="border: 0;"></a>`,
			escapeAttribute(link.URL), iconURL, escapeAttribute(string(link.Platform)), iconSize, iconSize)
	}
	sb.WriteString("</td></tr>\n")
	return sb.String()
}

func renderFooterRow(b *FooterBlock) string {
	style := styleOrEmpty(b.Style)
	cellStyle := fmt.Sprintf("padding: %s; text-align: %s; font-size: %s; color: %s;",
		orDefault(style.Padding, "20px"),
		orDefault(style.TextAlign, "center"),
		orDefault(style.FontSize, "12px"),
		orDefault(style.Color, defaultFooterColor),
	)

	var sb strings.Builder
	fmt.Fprintf(&sb, "<tr><td style=\"%s\">", cellStyle)
	// Each line is omitted entirely when its source field is empty.
	if b.CompanyName != "" {
		fmt.Fprintf(&sb, `<p style="margin: 0 0 4px 0; font-weight: bold;">%s</p>`, escapeHTML(b.CompanyName))
	}
	if b.Address != "" {
		fmt.Fprintf(&sb, `<p style="margin: 0 0 4px 0;">%s</p>`, escapeHTML(b.Address))
	}
	if b.UnsubscribeLink != "" {
		text := orDefault(b.UnsubscribeText, "Unsubscribe")
		fmt.Fprintf(&sb, `<p style="margin: 0;"><a href="%s" style="color: %s;">%s</a></p>`,
			escapeAttribute(b.UnsubscribeLink), defaultFooterColor, escapeHTML(text))
	}
	sb.WriteString("</td></tr>\n")
	return sb.String()
}

func styleOrEmpty(style *BlockStyle) BlockStyle {
	if style == nil {
		return BlockStyle{}
	}
	return *style
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// escapeHTML escapes plain-string payloads for element content.
func escapeHTML(content string) string {
	content = strings.ReplaceAll(content, "&", "&amp;")
	content = strings.ReplaceAll(content, "<", "&lt;")
	content = strings.ReplaceAll(content, ">", "&gt;")
	return content
}

// escapeAttribute escapes values for attribute position. Ampersands are
// left alone so URL query parameters survive, liquid tokens pass through
// untouched.
func escapeAttribute(value string) string {
	value = strings.ReplaceAll(value, `"`, "&quot;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	return value
}
