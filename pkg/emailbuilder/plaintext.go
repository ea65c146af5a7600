package emailbuilder

import (
	"regexp"
	"strings"
)

var (
	styleBlockRegex  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptBlockRegex = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	lineBreakRegex   = regexp.MustCompile(`(?i)<br\s*/?>`)
	paragraphRegex   = regexp.MustCompile(`(?i)</(?:p|h[1-6])>`)
	divCloseRegex    = regexp.MustCompile(`(?i)</(?:div|tr)>`)
	listItemRegex    = regexp.MustCompile(`(?i)<li[^>]*>`)
	anchorRegex      = regexp.MustCompile(`(?is)<a[^>]*href=["']([^"']*)["'][^>]*>(.*?)</a>`)
	tagRegex         = regexp.MustCompile(`<[^>]*>`)
	newlineRunRegex  = regexp.MustCompile(`\n{3,}`)
)

// ToPlainText degrades an HTML email body to a best-effort, order
// preserving text rendition. It is a heuristic transform, not an HTML
// parser: exotic markup may come out imperfect, but the function never
// fails and never leaks tag syntax for well-formed input.
func ToPlainText(html string) string {
	text := styleBlockRegex.ReplaceAllString(html, "")
	text = scriptBlockRegex.ReplaceAllString(text, "")

	text = lineBreakRegex.ReplaceAllString(text, "\n")
	text = paragraphRegex.ReplaceAllString(text, "\n\n")
	text = divCloseRegex.ReplaceAllString(text, "\n")
	text = listItemRegex.ReplaceAllString(text, "\n• ")

	// Keep link destinations: <a href="U">T</a> becomes "T (U)".
	text = anchorRegex.ReplaceAllString(text, "$2 ($1)")

	text = tagRegex.ReplaceAllString(text, "")

	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", `"`)

	text = newlineRunRegex.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
