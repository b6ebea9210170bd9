package agent

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	openFenceRe  = regexp.MustCompile("^```[a-zA-Z]*[ \t]*\n?")
	closeFenceRe = regexp.MustCompile("\n?```\\s*$")
	langLabelRe  = regexp.MustCompile(`^(javascript|typescript|jsx|tsx|json|js|ts)[ \t]*\n`)
)

// ExtractText flattens a model payload to plain text. Plain content is
// returned unchanged; fragment lists concatenate the text of every
// "text"-typed fragment in order, stringifying anything else. It never
// fails.
func ExtractText(c Content) string {
	switch v := c.(type) {
	case Plain:
		return string(v)
	case Fragments:
		var b strings.Builder
		for _, f := range v {
			if f.Type == "text" {
				b.WriteString(f.Text)
			} else {
				fmt.Fprintf(&b, "%v", f)
			}
		}
		return b.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", c)
	}
}

// StripCodeDecoration removes markdown fences and stray language labels
// from generated code or JSON. At most one opening fence (with optional
// language tag), one closing fence and one leading bare language-name line
// are removed; interior content is untouched. Idempotent.
func StripCodeDecoration(text string) string {
	text = strings.TrimSpace(text)
	text = openFenceRe.ReplaceAllString(text, "")
	text = closeFenceRe.ReplaceAllString(text, "")
	text = langLabelRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
