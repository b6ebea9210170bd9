package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTextPlainUnchanged(t *testing.T) {
	assert.Equal(t, "hello world", ExtractText(Plain("hello world")))
	assert.Equal(t, "", ExtractText(Plain("")))
}

func TestExtractTextFragmentsInOrder(t *testing.T) {
	c := Fragments{
		{Type: "text", Text: "one "},
		{Type: "text", Text: "two "},
		{Type: "text", Text: "three"},
	}
	assert.Equal(t, "one two three", ExtractText(c))
}

func TestExtractTextSkipsNothing(t *testing.T) {
	c := Fragments{
		{Type: "text", Text: "before"},
		{Type: "image", Text: "ignored-inline"},
		{Type: "text", Text: "after"},
	}
	got := ExtractText(c)
	assert.Contains(t, got, "before")
	assert.Contains(t, got, "after")
	// non-text fragments are stringified, not dropped
	assert.Contains(t, got, "image")
}

func TestExtractTextNil(t *testing.T) {
	assert.Equal(t, "", ExtractText(nil))
}

func TestStripCodeDecoration(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no decoration", "function App() {}", "function App() {}"},
		{"fenced with language", "```jsx\nfunction App() {}\n```", "function App() {}"},
		{"fenced bare", "```\n{\"type\": \"new_topic\"}\n```", `{"type": "new_topic"}`},
		{"language label line", "javascript\nfunction App() {}", "function App() {}"},
		{"surrounding whitespace", "  \n```js\ncode\n```  \n", "code"},
		{"interior fences untouched", "a\n```\nb\n```\nc", "a\n```\nb\n```\nc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripCodeDecoration(tc.in))
		})
	}
}

func TestStripCodeDecorationIdempotent(t *testing.T) {
	inputs := []string{
		"```jsx\nfunction App() {}\n```",
		"typescript\nconst x = 1;",
		"plain text",
		"```\n```",
		"   padded   ",
		"{\"scenes\": []}",
	}
	for _, in := range inputs {
		once := StripCodeDecoration(in)
		twice := StripCodeDecoration(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}
