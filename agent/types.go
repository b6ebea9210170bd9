package agent

// Status tracks where a pipeline invocation is in its lifecycle. It drives
// the single branch point in the coder and is never mutated from outside
// once a run starts.
type Status int

const (
	StatusIdle Status = iota
	StatusPlanning
	StatusCoding
	StatusFixing
	StatusModifying
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlanning:
		return "planning"
	case StatusCoding:
		return "coding"
	case StatusFixing:
		return "fixing"
	case StatusModifying:
		return "modifying"
	}
	return "unknown"
}

// Intent is the classified purpose of a user turn.
type Intent int

const (
	IntentNewTopic Intent = iota
	IntentModification
	IntentFixError
)

func (i Intent) String() string {
	switch i {
	case IntentNewTopic:
		return "new_topic"
	case IntentModification:
		return "modification"
	case IntentFixError:
		return "fix_error"
	}
	return "unknown"
}

// SceneSpec is one timed unit of a lesson: narration plus a visual goal.
// Duration is the MINIMUM time the scene stays on screen in milliseconds;
// the rendered component also waits for narration to finish.
type SceneSpec struct {
	ID                int    `json:"id"`
	Duration          int    `json:"duration"`
	Narration         string `json:"narration"`
	VisualDescription string `json:"visual_description,omitempty"`
	AnimationNotes    string `json:"animation_notes,omitempty"`
}

// Artifact pairs the generated component code with its scene metadata. It
// is supplied by the caller on entry (so modify/fix have something to work
// on) and replaced wholesale on exit, never merged.
type Artifact struct {
	Code   string      `json:"code"`
	Scenes []SceneSpec `json:"scenes"`
}

// Message is one role-tagged conversation turn. Roles are "user" and
// "assistant".
type Message struct {
	Role    string
	Content string
}

// State is owned by exactly one pipeline invocation and is not persisted.
// Messages grow by one appended assistant message per generation step.
type State struct {
	Messages []Message
	Artifact Artifact
	Status   Status
	ErrorLog []string
}
