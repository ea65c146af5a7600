package emailbuilder

import (
	"fmt"
	"strings"

	"github.com/osteele/liquid"
)

// MapOfAny carries caller-supplied test data for preview compilation.
type MapOfAny map[string]any

// CompileRequest asks for a preview compilation of a block document:
// serialize to HTML, then resolve personalization tokens against test
// data. Export for persistence never goes through here, exported HTML
// keeps its tokens for the send-time substitution step.
type CompileRequest struct {
	Blocks      []Block     `json:"blocks"`
	GlobalStyle GlobalStyle `json:"globalStyle"`
	TestData    MapOfAny    `json:"testData,omitempty"`
}

// CompileResponse is the preview result. On a liquid failure Success is
// false and Error carries the message, the raw HTML is still returned
// for context.
type CompileResponse struct {
	Success bool    `json:"success"`
	HTML    *string `json:"html,omitempty"`
	Text    *string `json:"text,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// CompileTemplate renders the document and, when test data is present,
// resolves {{token}} placeholders through the liquid engine. The derived
// plain-text part always follows the final HTML.
func CompileTemplate(req CompileRequest) *CompileResponse {
	html := RenderHTML(req.Blocks, req.GlobalStyle)

	if len(req.TestData) > 0 && containsLiquidMarkup(html) {
		rendered, err := renderLiquid(html, req.TestData)
		if err != nil {
			message := fmt.Sprintf("failed to resolve personalization tokens: %v", err)
			return &CompileResponse{
				Success: false,
				HTML:    &html,
				Error:   &message,
			}
		}
		html = rendered
	}

	text := ToPlainText(html)
	return &CompileResponse{
		Success: true,
		HTML:    &html,
		Text:    &text,
	}
}

func containsLiquidMarkup(content string) bool {
	return strings.Contains(content, "{{") || strings.Contains(content, "{%")
}

func renderLiquid(content string, data MapOfAny) (string, error) {
	engine := liquid.NewEngine()
	rendered, err := engine.ParseAndRenderString(content, map[string]any(data))
	if err != nil {
		return "", err
	}
	return rendered, nil
}
