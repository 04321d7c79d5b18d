package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/activity-tracker-api/internal/constants"
	"github.com/yukikurage/activity-tracker-api/internal/models"
)

// ChatCompleter is the subset of the OpenAI client used for drafting.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIService struct {
	client ChatCompleter
	now    func() time.Time
}

// ActivityDraft is a suggested activity. Drafts are never stored.
type ActivityDraft struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Date        models.Date             `json:"date"`
	Priority    models.ActivityPriority `json:"priority"`
}

type rawDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Priority    string `json:"priority"`
}

// NewAIService returns a service without a client when apiKey is empty.
func NewAIService(apiKey string) *AIService {
	if apiKey == "" {
		return &AIService{now: time.Now}
	}
	return NewAIServiceWithClient(openai.NewClient(apiKey))
}

func NewAIServiceWithClient(client ChatCompleter) *AIService {
	return &AIService{client: client, now: time.Now}
}

// WithClock replaces the clock used for the prompt and for default dates.
func (s *AIService) WithClock(now func() time.Time) *AIService {
	s.now = now
	return s
}

// Enabled reports whether an API key was configured.
func (s *AIService) Enabled() bool {
	return s.client != nil
}

// DraftActivities extracts activity suggestions from free text using OpenAI GPT.
func (s *AIService) DraftActivities(ctx context.Context, text string) ([]ActivityDraft, error) {
	if s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrDescriptionRequired
	}

	today := models.Today(s.now())
	prompt := fmt.Sprintf(`You extract work items from text for a team activity tracker.

Today is %s.

Text:
%s

Return a JSON array of at most %d items, each shaped as:
{
  "title": "short title",
  "description": "what has to be done",
  "date": "due date as YYYY-MM-DD; resolve relative dates such as tomorrow or next week",
  "priority": "LOW, MEDIUM or HIGH"
}

Return [] when the text contains no work items. Return JSON only.`, today, text, constants.MaxAIGeneratedTasks)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrAINoTasksGenerated
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var raw []rawDraft
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrAINoTasksGenerated
	}

	drafts := make([]ActivityDraft, 0, len(raw))
	for _, r := range raw {
		if len(drafts) == constants.MaxAIGeneratedTasks {
			break
		}
		if d, ok := r.toDraft(today); ok {
			drafts = append(drafts, d)
		}
	}
	if len(drafts) == 0 {
		return nil, ErrAINoValidTasks
	}

	return drafts, nil
}

// toDraft drops items without a title. Unparseable dates fall back to
// today and unknown priorities to MEDIUM.
func (r rawDraft) toDraft(today models.Date) (ActivityDraft, bool) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return ActivityDraft{}, false
	}

	date, err := models.ParseDate(strings.TrimSpace(r.Date))
	if err != nil {
		date = today
	}
	priority, ok := models.ParseActivityPriority(r.Priority)
	if !ok {
		priority = models.ActivityPriorityMedium
	}

	description := strings.TrimSpace(r.Description)
	if description == "" {
		description = title
	}

	return ActivityDraft{
		Title:       title,
		Description: description,
		Date:        date,
		Priority:    priority,
	}, true
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
