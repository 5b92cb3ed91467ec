// Package llm generates narrative progress summaries via the Anthropic API.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/topictracker/pace/internal/models"
)

// Client wraps the Anthropic API for progress summarization.
type Client struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewClient creates an LLM client with the given API key and model.
func NewClient(apiKey, model string) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:   &client,
		model: anthropic.Model(model),
	}
}

// buildSummaryPrompt constructs the system and user prompts for a progress summary.
func buildSummaryPrompt(p *models.Progress) (system string, user string) {
	system = `You summarize software project status for a weekly report. Given the
current phase, health, task metrics, velocity, and per-phase completion of a
project, write a short narrative summary.

Rules:
- 2 to 4 sentences of plain prose
- Lead with overall health and the phase the team is working in
- Mention blocked work only when the blocked count is above zero
- Mention velocity as tasks per day
- No markdown, no bullet points, no preamble`

	var sb strings.Builder
	fmt.Fprintf(&sb, "Current phase: %d (%s)\n", p.CurrentStatus.Phase, p.CurrentStatus.PhaseName)
	fmt.Fprintf(&sb, "Health: %s\n", p.CurrentStatus.Health)
	fmt.Fprintf(&sb, "Tasks: %d/%d completed, %d in progress, %d blocked\n",
		p.Metrics.CompletedTasks, p.Metrics.TotalTasks,
		p.Metrics.InProgressTasks, p.Metrics.BlockedTasks)
	fmt.Fprintf(&sb, "Velocity: %.2f tasks/day\n", p.Metrics.Velocity.Current)
	sb.WriteString("Phases:\n")
	for _, ph := range p.Phases {
		fmt.Fprintf(&sb, "- %d %s: %s (%d/%d tasks)\n",
			ph.Number, ph.Name, ph.Status, ph.TasksCompleted, ph.TasksTotal)
	}
	user = sb.String()
	return
}

// SummarizeProgress sends the progress snapshot to the LLM and returns a
// short plain-text summary.
func (c *Client) SummarizeProgress(ctx context.Context, p *models.Progress) (string, error) {
	systemPrompt, userPrompt := buildSummaryPrompt(p)

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	// Extract text from response
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no text content in API response")
	}
	return text, nil
}
