package agent

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"lucid_teaching_agent/logger"
)

// Coder generates, modifies, or repairs the lesson component. All three
// branches replace the artifact code wholesale and reset the status to
// StatusCoding so the next turn never sees a transient state. Generation
// failures are not caught here: they propagate to the pipeline caller, and
// since writes happen only after a successful response the previous
// artifact survives a failed call untouched.
type Coder struct {
	llm Client
	log *logger.Logger
}

func NewCoder(llm Client, log *logger.Logger) *Coder {
	return &Coder{llm: llm, log: log}
}

func (c *Coder) Generate(ctx context.Context, st State) (State, error) {
	switch st.Status {
	case StatusModifying:
		return c.modify(ctx, st)
	case StatusFixing:
		return c.fix(ctx, st)
	case StatusIdle, StatusPlanning, StatusCoding:
		return c.compile(ctx, st)
	}
	return c.compile(ctx, st)
}

// compile turns the planner's raw plan text into component code.
func (c *Coder) compile(ctx context.Context, st State) (State, error) {
	planText := lastContent(st.Messages)
	scenes := parseScenes(planText)
	if len(scenes) == 0 {
		c.log.Warn("plan text did not parse as JSON, generating without scene metadata")
	}

	resp, err := c.llm.Invoke(ctx, coderPrompt, []Message{{Role: "user", Content: planText}})
	if err != nil {
		return st, fmt.Errorf("coder (coding): %w", err)
	}

	st.Artifact = Artifact{
		Code:   StripCodeDecoration(ExtractText(resp)),
		Scenes: scenes,
	}
	st.Status = StatusCoding
	return st, nil
}

// modify patches the existing code per the latest user request. Scene
// metadata is carried through untouched: modification never re-derives a
// structured plan, so scenes may go stale relative to the code.
func (c *Coder) modify(ctx context.Context, st State) (State, error) {
	user := fmt.Sprintf("Current Code:\n%s\n\nModification Request: %s",
		st.Artifact.Code, lastContent(st.Messages))

	resp, err := c.llm.Invoke(ctx, modifierPrompt, []Message{{Role: "user", Content: user}})
	if err != nil {
		return st, fmt.Errorf("coder (modifying): %w", err)
	}

	st.Artifact.Code = StripCodeDecoration(ExtractText(resp))
	st.Status = StatusCoding
	return st, nil
}

// fix repairs the existing code given the error report in the last message.
func (c *Coder) fix(ctx context.Context, st State) (State, error) {
	user := fmt.Sprintf("Current Code:\n%s\n\nError:\n%s",
		st.Artifact.Code, lastContent(st.Messages))

	resp, err := c.llm.Invoke(ctx, fixerPrompt, []Message{{Role: "user", Content: user}})
	if err != nil {
		return st, fmt.Errorf("coder (fixing): %w", err)
	}

	st.Artifact.Code = StripCodeDecoration(ExtractText(resp))
	st.Status = StatusCoding
	return st, nil
}

// parseScenes pulls scene metadata out of the plan JSON for bookkeeping.
// A malformed plan is tolerated and yields an empty list: code generation
// still runs on the raw text.
func parseScenes(planText string) []SceneSpec {
	scenes := []SceneSpec{}
	cleaned := StripCodeDecoration(planText)
	if !gjson.Valid(cleaned) {
		return scenes
	}
	for _, s := range gjson.Get(cleaned, "scenes").Array() {
		scenes = append(scenes, SceneSpec{
			ID:                int(s.Get("id").Int()),
			Duration:          int(s.Get("duration").Int()),
			Narration:         s.Get("narration").String(),
			VisualDescription: s.Get("visual_description").String(),
			AnimationNotes:    s.Get("animation_notes").String(),
		})
	}
	return scenes
}

func lastContent(msgs []Message) string {
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].Content
}
