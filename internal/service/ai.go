package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"golf-coach/internal/common"
	"golf-coach/internal/logger"
	"golf-coach/internal/model"
	"io"
	"net/http"
	"strings"
	"time"
)

// AIService talks to an OpenAI-compatible chat completions endpoint.
type AIService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewAIService(baseURL, apiKey, model string, timeout time.Duration) *AIService {
	return &AIService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// doChat sends one non-streaming completion request in JSON mode and returns
// the assistant message content.
func (s *AIService) doChat(ctx context.Context, messages []chatMessage, maxTokens int) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("openai api key missing: %w", common.ErrNotConfigured)
	}
	body := map[string]interface{}{
		"model":           s.model,
		"messages":        messages,
		"response_format": map[string]string{"type": "json_object"},
	}
	if maxTokens > 0 {
		body["max_tokens"] = maxTokens
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %v: %w", err, common.ErrUpstream)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("llm status %d: %s: %w", resp.StatusCode, data, common.ErrUpstream)
	}
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode response: %v: %w", err, common.ErrUpstream)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices: %w", common.ErrUpstream)
	}
	return result.Choices[0].Message.Content, nil
}

// PlanPrompt is everything the model gets to know about the player.
type PlanPrompt struct {
	Handicap           string
	Performance        string
	DaysPerWeek        int
	HoursPerSession    string
	PreferredTime      string
	AvailableResources []string
	PracticeGoal       string
}

type PlanDraft struct {
	FocusAreas      []string            `json:"focusAreas"`
	WeeklySchedule  []model.ScheduleDay `json:"weeklySchedule"`
	Recommendations string              `json:"recommendations"`
}

func (d *PlanDraft) complete() bool {
	return d != nil && len(d.FocusAreas) > 0 && len(d.WeeklySchedule) > 0 && strings.TrimSpace(d.Recommendations) != ""
}

const planSystemPrompt = `You are an expert golf instructor and practice plan designer. Create detailed, practical practice plans that target specific weaknesses and provide measurable improvement goals. Respond with JSON only.`

func buildPlanPrompt(p PlanPrompt) string {
	resources := "none listed"
	if len(p.AvailableResources) > 0 {
		resources = strings.Join(p.AvailableResources, ", ")
	}
	goal := p.PracticeGoal
	if goal == "" {
		goal = "lower my handicap"
	}
	return fmt.Sprintf(`Generate a personalized golf practice plan based on the following information:

Player profile:
- Handicap: %s
- Practice availability: %d days per week, %s hours per session
- Preferred time: %s
- Practice goal: %s
- Available resources: %s

%s

Return a JSON object with this structure:
{
  "focusAreas": ["primary_weakness", "secondary_focus", "maintenance_area"],
  "weeklySchedule": [
    {
      "day": "Monday",
      "title": "Session title",
      "duration": "%s hours",
      "activities": [
        {"name": "Activity name", "duration": "X minutes", "description": "Detailed description", "location": "Required facility or resource", "focus": "skill_area"}
      ]
    }
  ],
  "recommendations": "Specific advice for improvement and expected results"
}

Schedule exactly %d days. Focus on the biggest weaknesses while maintaining strengths, with specific, actionable drills.`,
		p.Handicap, p.DaysPerWeek, p.HoursPerSession, p.PreferredTime, goal, resources,
		p.Performance, p.HoursPerSession, p.DaysPerWeek)
}

func (s *AIService) GeneratePracticePlan(ctx context.Context, p PlanPrompt) (*PlanDraft, error) {
	content, err := s.doChat(ctx, []chatMessage{
		{Role: "system", Content: planSystemPrompt},
		{Role: "user", Content: buildPlanPrompt(p)},
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	var draft PlanDraft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, fmt.Errorf("decode plan: %v: %w", err, common.ErrUpstream)
	}
	if !draft.complete() {
		return nil, fmt.Errorf("incomplete plan: %w", common.ErrUpstream)
	}
	return &draft, nil
}

const extractPrompt = `Analyze this golf app scorecard screenshot and extract the round data as JSON with these fields:
{
  "courseName": "course name",
  "totalScore": number,
  "courseRating": number,
  "slopeRating": number,
  "fairwaysHit": number,
  "greensInRegulation": number,
  "totalPutts": number,
  "penalties": number,
  "date": "YYYY-MM-DD"
}
Only include values you can clearly read. Omit any field that is not visible or unclear.`

// ExtractRound asks a vision model to read round fields off an image.
func (s *AIService) ExtractRound(ctx context.Context, image []byte, mime string) (*model.ExtractedRound, error) {
	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)
	content, err := s.doChat(ctx, []chatMessage{{
		Role: "user",
		Content: []contentPart{
			{Type: "text", Text: extractPrompt},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		},
	}}, 500)
	if err != nil {
		return nil, fmt.Errorf("extract round: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("decode extraction: %v: %w", err, common.ErrUpstream)
	}
	var out model.ExtractedRound
	for name, err := range map[string]error{
		"date":               extractField(raw, "date", &out.Date),
		"courseName":         extractField(raw, "courseName", &out.CourseName),
		"totalScore":         extractField(raw, "totalScore", &out.TotalScore),
		"courseRating":       extractField(raw, "courseRating", &out.CourseRating),
		"slopeRating":        extractField(raw, "slopeRating", &out.SlopeRating),
		"fairwaysHit":        extractField(raw, "fairwaysHit", &out.FairwaysHit),
		"greensInRegulation": extractField(raw, "greensInRegulation", &out.GreensInRegulation),
		"totalPutts":         extractField(raw, "totalPutts", &out.TotalPutts),
		"penalties":          extractField(raw, "penalties", &out.Penalties),
	} {
		if err != nil {
			logger.Ctx(ctx).Warn("ai.extract.field_skipped", "field", name, "err", err)
		}
	}
	return &out, nil
}

// extractField decodes raw[name] into dst. A missing or null field leaves dst
// nil, and so does a value of the wrong type.
func extractField[T any](raw map[string]json.RawMessage, name string, dst **T) error {
	msg, ok := raw[name]
	if !ok || string(msg) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}
