package ollama

import (
	"testing"

	"stackfast/internal/llm"
)

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```{\"a\":1}```":         `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range cases {
		if got := stripFences(in); got != want {
			t.Fatalf("stripFences(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSystemPromptAddsJSONInstruction(t *testing.T) {
	if got := systemPrompt(llm.Request{SystemPrompt: "sys"}); got != "sys" {
		t.Fatalf("unexpected prompt %q", got)
	}
	if got := systemPrompt(llm.Request{JSONMode: true}); got != jsonInstruction {
		t.Fatalf("unexpected prompt %q", got)
	}
	if got := systemPrompt(llm.Request{SystemPrompt: "sys", JSONMode: true}); got != "sys\n\n"+jsonInstruction {
		t.Fatalf("unexpected prompt %q", got)
	}
}

func TestNewClient(t *testing.T) {
	if _, err := NewClient("", ""); err == nil {
		t.Fatalf("expected model error")
	}
	c, err := NewClient("", "llama3")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.model != "llama3" {
		t.Fatalf("unexpected model %q", c.model)
	}
}
