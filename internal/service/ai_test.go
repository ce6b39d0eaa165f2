package service

import (
	"context"
	"encoding/json"
	"golf-coach/internal/common"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM answers every completion with content.
func fakeLLM(t *testing.T, status int, content string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": content}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeneratePracticePlan(t *testing.T) {
	draft := `{"focusAreas":["putting"],"weeklySchedule":[{"day":"Monday","title":"Greens","duration":"2.0 hours","activities":[{"name":"Gate drill","duration":"20 minutes","description":"d","location":"Putting Green"}]}],"recommendations":"Roll it."}`
	var body map[string]any
	srv := fakeLLM(t, http.StatusOK, draft, &body)
	ai := NewAIService(srv.URL, "test-key", "gpt-4o", 5*time.Second)

	got, err := ai.GeneratePracticePlan(context.Background(), PlanPrompt{
		Handicap: "12.4", DaysPerWeek: 2, HoursPerSession: "2.0", PreferredTime: "evening",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"putting"}, got.FocusAreas)
	assert.Equal(t, "Gate drill", got.WeeklySchedule[0].Activities[0].Name)

	assert.Equal(t, "gpt-4o", body["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, body["response_format"])
	msgs := body["messages"].([]any)
	user := msgs[1].(map[string]any)["content"].(string)
	assert.True(t, strings.Contains(user, "Handicap: 12.4"))
}

func TestGeneratePracticePlanFailures(t *testing.T) {
	t.Run("no key", func(t *testing.T) {
		_, err := NewAIService("http://127.0.0.1:1", "", "m", time.Second).GeneratePracticePlan(context.Background(), PlanPrompt{})
		assert.ErrorIs(t, err, common.ErrNotConfigured)
	})
	t.Run("status", func(t *testing.T) {
		srv := fakeLLM(t, http.StatusInternalServerError, "", nil)
		_, err := NewAIService(srv.URL, "test-key", "m", time.Second).GeneratePracticePlan(context.Background(), PlanPrompt{})
		assert.ErrorIs(t, err, common.ErrUpstream)
	})
	t.Run("not json", func(t *testing.T) {
		srv := fakeLLM(t, http.StatusOK, "sorry", nil)
		_, err := NewAIService(srv.URL, "test-key", "m", time.Second).GeneratePracticePlan(context.Background(), PlanPrompt{})
		assert.ErrorIs(t, err, common.ErrUpstream)
	})
	t.Run("incomplete", func(t *testing.T) {
		srv := fakeLLM(t, http.StatusOK, `{"focusAreas":["putting"]}`, nil)
		_, err := NewAIService(srv.URL, "test-key", "m", time.Second).GeneratePracticePlan(context.Background(), PlanPrompt{})
		assert.ErrorIs(t, err, common.ErrUpstream)
	})
}

func TestExtractRoundFromImage(t *testing.T) {
	var body map[string]any
	srv := fakeLLM(t, http.StatusOK, `{"courseName":"Presidio","totalScore":85,"courseRating":70.2}`, &body)
	ai := NewAIService(srv.URL, "test-key", "gpt-4o", 5*time.Second)

	got, err := ai.ExtractRound(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Presidio", *got.CourseName)
	assert.Equal(t, 85, *got.TotalScore)
	assert.Equal(t, "70.2", got.CourseRating.String())
	assert.Nil(t, got.SlopeRating)

	assert.EqualValues(t, 500, body["max_tokens"])
	parts := body["messages"].([]any)[0].(map[string]any)["content"].([]any)
	img := parts[1].(map[string]any)["image_url"].(map[string]any)["url"].(string)
	assert.True(t, strings.HasPrefix(img, "data:image/png;base64,"))
}

func TestExtractRoundSkipsUnreadableFields(t *testing.T) {
	srv := fakeLLM(t, http.StatusOK, `{"courseName":"Presidio","totalScore":"eighty-five","courseRating":70.2,"slopeRating":null,"totalPutts":31}`, nil)
	ai := NewAIService(srv.URL, "test-key", "gpt-4o", 5*time.Second)

	got, err := ai.ExtractRound(context.Background(), []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Presidio", *got.CourseName)
	assert.Nil(t, got.TotalScore)
	assert.Nil(t, got.SlopeRating)
	assert.Equal(t, "70.2", got.CourseRating.String())
	assert.Equal(t, 31, *got.TotalPutts)

	srv = fakeLLM(t, http.StatusOK, `not json at all`, nil)
	_, err = NewAIService(srv.URL, "test-key", "gpt-4o", 5*time.Second).ExtractRound(context.Background(), []byte("x"), "image/png")
	assert.ErrorIs(t, err, common.ErrUpstream)
}
