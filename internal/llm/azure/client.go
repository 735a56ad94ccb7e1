package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"

	"stackfast/internal/llm"
)

// Client implements llm.Client on an Azure OpenAI deployment.
type Client struct {
	client       *azopenai.Client
	deploymentID string
}

// NewClient creates a client for the given endpoint and deployment using key auth.
func NewClient(endpoint, apiKey, deploymentID string) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("AZURE_OPENAI_ENDPOINT is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("AZURE_OPENAI_KEY is required")
	}
	if strings.TrimSpace(deploymentID) == "" {
		return nil, fmt.Errorf("AZURE_OPENAI_DEPLOYMENT is required")
	}
	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(endpoint, keyCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("create Azure OpenAI client: %w", err)
	}
	return &Client{client: client, deploymentID: deploymentID}, nil
}

// Complete sends the prompt pair to the deployment and returns the first choice.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	resp, err := c.client.GetChatCompletions(ctx, buildOptions(c.deploymentID, req), nil)
	if err != nil {
		return "", fmt.Errorf("azure openai: %w", err)
	}
	if len(resp.Choices) > 0 && resp.Choices[0].Message != nil && resp.Choices[0].Message.Content != nil {
		if content := strings.TrimSpace(*resp.Choices[0].Message.Content); content != "" {
			return content, nil
		}
	}
	return "", fmt.Errorf("azure openai: no completion received")
}

func buildOptions(deploymentID string, req llm.Request) azopenai.ChatCompletionsOptions {
	messages := make([]azopenai.ChatRequestMessageClassification, 0, 2)
	if strings.TrimSpace(req.SystemPrompt) != "" {
		messages = append(messages, &azopenai.ChatRequestSystemMessage{
			Content: azopenai.NewChatRequestSystemMessageContent(req.SystemPrompt),
		})
	}
	messages = append(messages, &azopenai.ChatRequestUserMessage{
		Content: azopenai.NewChatRequestUserMessageContent(req.UserPrompt),
	})

	opts := azopenai.ChatCompletionsOptions{
		DeploymentName: to.Ptr(deploymentID),
		Messages:       messages,
		Temperature:    to.Ptr(req.Temperature),
	}
	if req.MaxTokens > 0 {
		opts.MaxTokens = to.Ptr(int32(req.MaxTokens))
	}
	if req.JSONMode {
		opts.ResponseFormat = &azopenai.ChatCompletionsJSONResponseFormat{}
	}
	return opts
}

var _ llm.Client = (*Client)(nil)
