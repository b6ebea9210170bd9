package agent

import (
	"context"
	"fmt"
)

// Planner designs the scene-by-scene lesson.
type Planner struct {
	llm Client
}

func NewPlanner(llm Client) *Planner {
	return &Planner{llm: llm}
}

// Plan returns the raw plan text (JSON-encoded by the prompt contract, but
// not parsed here). Scene counts and durations are advisory in the prompt
// and deliberately not validated downstream.
func (p *Planner) Plan(ctx context.Context, msgs []Message) (string, error) {
	resp, err := p.llm.Invoke(ctx, plannerPrompt, msgs)
	if err != nil {
		return "", fmt.Errorf("planner: %w", err)
	}
	return ExtractText(resp), nil
}
