package agent

import (
	"context"
	"strings"

	"lucid_teaching_agent/logger"
)

// Pipeline wires router, planner and coder into the per-turn flow:
//
//	router -> planner -> coder   (new topic)
//	router -> coder              (modification, fix)
//
// One user turn yields exactly one pass through the graph. The pipeline
// itself is stateless across turns; the only carry-over is the artifact the
// caller re-supplies in the next State.
type Pipeline struct {
	router  *Router
	planner *Planner
	coder   *Coder
	log     *logger.Logger
}

func NewPipeline(routerLLM, plannerLLM, coderLLM Client, log *logger.Logger) *Pipeline {
	return &Pipeline{
		router:  NewRouter(routerLLM, log),
		planner: NewPlanner(plannerLLM),
		coder:   NewCoder(coderLLM, log),
		log:     log,
	}
}

// Run executes one turn. On error the returned state still carries the
// caller's artifact unchanged: replacement only happens after a successful
// generation call.
func (p *Pipeline) Run(ctx context.Context, st State) (State, error) {
	last := lastUserMessage(st.Messages)
	hasArtifact := st.Artifact.Code != ""

	intent := p.router.Classify(ctx, last, hasArtifact)
	p.log.Info("turn classified", "intent", intent.String(), "has_artifact", hasArtifact)

	switch intent {
	case IntentFixError:
		st.Status = StatusFixing
	case IntentModification:
		st.Status = StatusModifying
	default:
		st.Status = StatusPlanning
	}

	if st.Status == StatusPlanning {
		planText, err := p.planner.Plan(ctx, st.Messages)
		if err != nil {
			st.ErrorLog = append(st.ErrorLog, err.Error())
			return st, err
		}
		st.Messages = append(st.Messages, Message{Role: "assistant", Content: planText})
	}

	out, err := p.coder.Generate(ctx, st)
	if err != nil {
		st.ErrorLog = append(st.ErrorLog, err.Error())
		return st, err
	}
	return out, nil
}

// Summary derives the human-readable reply from the scene narrations: the
// first three joined, with an ellipsis when more exist, or a fixed fallback
// when no scenes are known.
func Summary(st State) string {
	var narrations []string
	for _, s := range st.Artifact.Scenes {
		if s.Narration != "" {
			narrations = append(narrations, s.Narration)
		}
	}
	if len(narrations) == 0 {
		return "I've created an animated lesson for you!"
	}
	n := len(narrations)
	if n > 3 {
		n = 3
	}
	text := strings.Join(narrations[:n], " ")
	if len(narrations) > 3 {
		text += " ..."
	}
	return text
}

func lastUserMessage(msgs []Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" {
			return msgs[i].Content
		}
	}
	return ""
}
