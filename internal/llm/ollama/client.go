package ollama

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/JexSrs/go-ollama"

	"stackfast/internal/llm"
)

const defaultHost = "http://localhost:11434"

// jsonInstruction is appended to the system prompt in JSON mode; Generate has no format switch.
const jsonInstruction = "Respond with a single JSON object and nothing else."

// Client implements llm.Client against a local Ollama server.
type Client struct {
	client *ollama.Ollama
	model  string
}

// NewClient parses host (default http://localhost:11434) and binds model.
func NewClient(host, model string) (*Client, error) {
	if strings.TrimSpace(host) == "" {
		host = defaultHost
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Ollama")
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_HOST %q: %w", host, err)
	}
	return &Client{client: ollama.New(*u), model: model}, nil
}

// Complete runs a single non-streaming generation. The Ollama client has no
// context support, so ctx is only checked before the call.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	res, err := c.client.Generate(
		c.client.Generate.WithModel(c.model),
		c.client.Generate.WithSystem(systemPrompt(req)),
		c.client.Generate.WithPrompt(req.UserPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if !res.Done {
		return "", fmt.Errorf("ollama generate: response not complete")
	}
	content := stripFences(res.Response)
	if content == "" {
		return "", fmt.Errorf("ollama generate: empty response")
	}
	return content, nil
}

func systemPrompt(req llm.Request) string {
	if !req.JSONMode {
		return req.SystemPrompt
	}
	if strings.TrimSpace(req.SystemPrompt) == "" {
		return jsonInstruction
	}
	return req.SystemPrompt + "\n\n" + jsonInstruction
}

// stripFences removes the markdown code fences local models tend to wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.Trim(s, "`")
	return strings.TrimSpace(s)
}

var _ llm.Client = (*Client)(nil)
