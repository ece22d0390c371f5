package utils

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadforge/config"
)

func TestNewContentGeneratorPicksMockWithoutKey(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	g := NewContentGenerator(config.Config{}, logger)
	assert.IsType(t, &MockGenerator{}, g)

	g = NewContentGenerator(config.Config{OpenAIAPIKey: "sk-test", OpenAIModel: "gpt-4-turbo-preview"}, logger)
	assert.IsType(t, &OpenAIGenerator{}, g)
}

func TestMockColdEmailIsDeterministic(t *testing.T) {
	g := &MockGenerator{}

	first, err := g.GenerateColdEmail(context.Background(), "SaaS", "USA", "high churn", "retention tooling", "Persuasive")
	require.NoError(t, err)
	second, err := g.GenerateColdEmail(context.Background(), "SaaS", "USA", "high churn", "retention tooling", "Persuasive")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "SaaS")
	assert.Contains(t, first, "[First Name]")
	assert.Contains(t, first, "[Company Name]")
}

func TestMockFollowUpMentionsProblem(t *testing.T) {
	g := &MockGenerator{}

	body, err := g.GenerateFollowUpEmail(context.Background(), "SaaS", "high churn", "retention tooling", "Gentle Reminder")
	require.NoError(t, err)
	assert.Contains(t, body, "follow up")
	assert.Contains(t, body, "high churn")
}

func TestMockInsightsShape(t *testing.T) {
	g := &MockGenerator{}

	insights, err := g.GenerateInsights(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, insights, 3)

	assert.Equal(t, "strategy", insights[0].Type)
	require.NotNil(t, insights[0].StrategyDetails)
	assert.Equal(t, "Fintech", insights[0].StrategyDetails.Niche)
	assert.Equal(t, "optimization", insights[1].Type)
	assert.Equal(t, "subject_line", insights[2].Type)
}

func TestMockStrategyIsComplete(t *testing.T) {
	g := &MockGenerator{}

	strategy, err := g.GenerateStrategy(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, strategy.Niche)
	assert.NotEmpty(t, strategy.Location)
	assert.NotEmpty(t, strategy.Problem)
	assert.NotEmpty(t, strategy.Offer)
}

func TestPersonalizeEmail(t *testing.T) {
	body := "Hi [First Name], I noticed [Company Name] is growing fast. Is [Company Name] hiring?"

	got := PersonalizeEmail(body, "Jane Doe", "Acme Corp")
	assert.Equal(t, "Hi Jane, I noticed Acme Corp is growing fast. Is Acme Corp hiring?", got)

	// Single-word names are used whole.
	got = PersonalizeEmail("Hi [First Name]", "Cher", "Acme Corp")
	assert.Equal(t, "Hi Cher", got)
}
