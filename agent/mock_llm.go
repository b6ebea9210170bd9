package agent

import (
	"context"
	"strings"
	"sync"
)

// MockClient returns scripted responses in order, recording every call.
// When the script runs out the last response repeats; when Err is set it is
// returned instead.
type MockClient struct {
	Responses []Content
	Err       error

	mu    sync.Mutex
	calls []MockCall
	next  int
}

// MockCall captures one Invoke.
type MockCall struct {
	System string
	Msgs   []Message
}

func (m *MockClient) Invoke(_ context.Context, system string, msgs []Message) (Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{System: system, Msgs: msgs})
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Responses) == 0 {
		return Plain(""), nil
	}
	i := m.next
	if i >= len(m.Responses) {
		i = len(m.Responses) - 1
	}
	m.next++
	return m.Responses[i], nil
}

// Calls returns a copy of the recorded invocations.
func (m *MockClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CannedClient produces deterministic offline responses so the whole server
// can be exercised without an API key (-mock flag).
type CannedClient struct{}

func (CannedClient) Invoke(_ context.Context, system string, _ []Message) (Content, error) {
	switch {
	case strings.Contains(system, "You are a Router"):
		return Plain(`{"type": "new_topic"}`), nil
	case strings.Contains(system, "Pedagogical Architect"):
		return Plain(cannedPlan), nil
	default:
		return Fragments{{Type: "text", Text: cannedCode}}, nil
	}
}

const cannedPlan = `{
  "title": "Offline Sample Lesson",
  "scenes": [
    {"id": 1, "duration": 4000, "narration": "Welcome to the offline sample lesson.", "visual_description": "Title card with an animated circle.", "animation_notes": "Circle draws in, title fades up."},
    {"id": 2, "duration": 5000, "narration": "This lesson was produced without calling a model.", "visual_description": "A single line of text over a grid.", "animation_notes": "Grid lines draw left to right."},
    {"id": 3, "duration": 4000, "narration": "That is all for now.", "visual_description": "Outro card.", "animation_notes": "Everything fades out."}
  ]
}`

const cannedCode = `function App() {
  const [currentScene, setCurrentScene] = useState(0);
  const scenes = [
    { id: 1, duration: 4000, narration: "Welcome to the offline sample lesson." },
    { id: 2, duration: 5000, narration: "This lesson was produced without calling a model." },
    { id: 3, duration: 4000, narration: "That is all for now." },
  ];
  useEffect(() => {
    prefetchAllScenes(scenes.map(s => s.narration));
    setCurrentScene(1);
  }, []);
  useEffect(() => {
    if (currentScene === 0) return;
    const scene = scenes.find(s => s.id === currentScene);
    if (!scene) return;
    let speechDone = false;
    let timerDone = false;
    let cancelled = false;
    function tryAdvance() {
      if (cancelled) return;
      if (speechDone && timerDone && currentScene < scenes.length) {
        setCurrentScene(prev => prev + 1);
      }
    }
    cancelSpeech();
    speak(scene.narration, {
      onEnd: () => { speechDone = true; tryAdvance(); },
      onError: () => { speechDone = true; tryAdvance(); },
    });
    const timer = setTimeout(() => { timerDone = true; tryAdvance(); }, scene.duration);
    return () => { cancelled = true; clearTimeout(timer); cancelSpeech(); };
  }, [currentScene]);
  return (
    <div style={{ width: '100%', height: '100%', background: '#0c0f14', color: '#F5F7FA' }}>
      <AnimatePresence mode="wait">
        {currentScene > 0 && (
          <motion.div key={'s' + currentScene} exit={{ opacity: 0 }}>
            <svg viewBox="0 0 800 450">
              <motion.circle cx="400" cy="200" r="80" stroke="#00F6BB" fill="none"
                initial={{ pathLength: 0 }} animate={{ pathLength: 1 }} />
            </svg>
          </motion.div>
        )}
      </AnimatePresence>
    </div>
  );
}`
