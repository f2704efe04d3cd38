package flow

import (
	"context"
	"testing"

	"github.com/fadilmartias/career-compass/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestSkills(t *testing.T) {
	gen := servicetest.New().On("suggestSkills", servicetest.Reply{
		Text: `{"suggestedSkills": [" Go ", "", "Kubernetes"], "reasoning": "Both appear in the posting."}`,
	})

	res, err := SuggestSkills(context.Background(), gen, SkillSuggestionRequest{
		UserDescription:       "Java developer",
		JobDescription:        "Go developer",
		CompatibilityAnalysis: "Partial match.",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kubernetes"}, res.SuggestedSkills)
	assert.Equal(t, "Both appear in the posting.", res.Reasoning)

	req, _ := gen.Last("suggestSkills")
	assert.Contains(t, req.Prompt, "Compatibility Analysis: Partial match.")
}

func TestSuggestSkillsReasoningOptional(t *testing.T) {
	gen := servicetest.New().On("suggestSkills", servicetest.Reply{Text: `{"suggestedSkills": ["SQL"]}`})

	res, err := SuggestSkills(context.Background(), gen, SkillSuggestionRequest{UserDescription: "a", JobDescription: "b"})

	require.NoError(t, err)
	assert.Equal(t, []string{"SQL"}, res.SuggestedSkills)
	assert.Empty(t, res.Reasoning)
}

func TestSuggestSkillsRequiresList(t *testing.T) {
	gen := servicetest.New().On("suggestSkills", servicetest.Reply{Text: `{"suggestedSkills": "Go, SQL"}`})

	_, err := SuggestSkills(context.Background(), gen, SkillSuggestionRequest{})

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}
