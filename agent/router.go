package agent

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	"lucid_teaching_agent/logger"
)

// ErrorReportPrefix marks a caller-originated runtime failure report. Such
// messages route straight to the fix branch without a model call.
const ErrorReportPrefix = "System Error:"

// Router classifies the latest user turn into an Intent.
type Router struct {
	llm Client
	log *logger.Logger
}

func NewRouter(llm Client, log *logger.Logger) *Router {
	return &Router{llm: llm, log: log}
}

// Classify never returns an error. Anything ambiguous (transport failure,
// malformed JSON, missing field) falls back to IntentNewTopic so the turn
// still produces a lesson; each fallback logs a warning so operators can
// alert on repeated classifier trouble.
//
// A modification request is meaningless without prior code, so it is
// coerced to a fresh generation when hasArtifact is false.
func (r *Router) Classify(ctx context.Context, lastUserMessage string, hasArtifact bool) Intent {
	if strings.HasPrefix(lastUserMessage, ErrorReportPrefix) {
		return IntentFixError
	}

	resp, err := r.llm.Invoke(ctx, routerPrompt, []Message{{Role: "user", Content: lastUserMessage}})
	if err != nil {
		r.log.Warn("classifier call failed, defaulting to new_topic", "error", err)
		return IntentNewTopic
	}

	text := StripCodeDecoration(ExtractText(resp))
	if !gjson.Valid(text) {
		r.log.Warn("classifier returned malformed JSON, defaulting to new_topic", "raw", text)
		return IntentNewTopic
	}

	switch gjson.Get(text, "type").String() {
	case "fix_error":
		return IntentFixError
	case "modification":
		if hasArtifact {
			return IntentModification
		}
		return IntentNewTopic
	default:
		return IntentNewTopic
	}
}
