package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"leadforge/config"
	"leadforge/models"
)

// GenerationFailedMessage is shown in place of generated content when the
// live generator errors out; state is never altered on failure.
const GenerationFailedMessage = "We're sorry, but we couldn't generate an email at this time. Please check your API key and try again."

// ContentGenerator produces outreach copy and analytics commentary. The
// live implementation calls a model API; the mock returns deterministic
// payloads. Pick one at startup with NewContentGenerator, never branch
// inline.
type ContentGenerator interface {
	GenerateColdEmail(ctx context.Context, niche, location, problem, offer, tone string) (string, error)
	GenerateFollowUpEmail(ctx context.Context, niche, problem, offer, style string) (string, error)
	GenerateInsights(ctx context.Context, campaigns []models.Campaign) ([]models.AIInsight, error)
	GenerateStrategy(ctx context.Context, campaigns []models.Campaign) (models.StrategyDetails, error)
}

// NewContentGenerator selects the live or mock generator based on
// credential presence.
func NewContentGenerator(cfg config.Config, logger *log.Logger) ContentGenerator {
	if cfg.OpenAIAPIKey == "" {
		logger.Println("OPENAI_API_KEY not set; AI content generation will use mock payloads")
		return &MockGenerator{}
	}
	return &OpenAIGenerator{
		client: openai.NewClient(cfg.OpenAIAPIKey),
		model:  cfg.OpenAIModel,
		logger: logger,
	}
}

// ---- Live generator ----

type OpenAIGenerator struct {
	client *openai.Client
	model  string
	logger *log.Logger
}

func (g *OpenAIGenerator) complete(ctx context.Context, prompt string, temperature float32, jsonMode bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) GenerateColdEmail(ctx context.Context, niche, location, problem, offer, tone string) (string, error) {
	prompt := fmt.Sprintf(`You are LeadForge AI, an expert cold email copywriter. Your task is to write a highly personalized and effective cold email.

**Instructions:**
1. The email should be concise, professional, and compelling.
2. Use placeholders like '[First Name]' and '[Company Name]' where appropriate.
3. The email must be tailored to the specific inputs provided.
4. Do not include a subject line unless it's exceptionally creative. Start with the body of the email.
5. End with a clear and low-friction call-to-action.
6. The entire response should be only the email text. Do not add any extra text, headings, or markdown.

**Email Details:**
*   **Recipient's Niche:** %s
*   **Recipient's Location:** %s
*   **Problem You Solve:** %s
*   **My Offer:** %s
*   **Desired Tone:** %s

Now, write the email.`, niche, location, problem, offer, tone)

	text, err := g.complete(ctx, prompt, 0.7, false)
	if err != nil {
		ReportError("generate_cold_email", err, map[string]interface{}{"niche": niche})
		return "", err
	}
	return text, nil
}

func (g *OpenAIGenerator) GenerateFollowUpEmail(ctx context.Context, niche, problem, offer, style string) (string, error) {
	prompt := fmt.Sprintf(`You are LeadForge AI, an expert at writing concise and effective follow-up emails. Your task is to write a follow-up to a previous cold email that has not yet received a response.

**Context of the first email:**
*   **Recipient's Niche:** %s
*   **Problem We Solve:** %s
*   **Our Offer:** %s

**Instructions:**
1. The follow-up should be very brief and to the point.
2. Use placeholders like '[First Name]' where appropriate.
3. Refer gently to the previous email without repeating all the details.
4. The entire response should be only the email text. Do not add any extra text, headings, or markdown.
5. Adapt the email to the specified follow-up style.

**Follow-up Style:** %s

Now, write the follow-up email.`, niche, problem, offer, style)

	text, err := g.complete(ctx, prompt, 0.6, false)
	if err != nil {
		ReportError("generate_follow_up", err, map[string]interface{}{"niche": niche})
		return "", err
	}
	return text, nil
}

func (g *OpenAIGenerator) GenerateInsights(ctx context.Context, campaigns []models.Campaign) ([]models.AIInsight, error) {
	if len(campaigns) == 0 {
		return mockInsights(), nil
	}

	data, err := json.MarshalIndent(campaigns, "", "  ")
	if err != nil {
		return mockInsights(), nil
	}

	prompt := fmt.Sprintf(`You are LeadForge AI, an expert data analyst and marketing strategist. Your task is to analyze campaign performance data and provide actionable insights to help the user improve their outreach.

**Instructions:**
1. Analyze the provided campaign data, focusing on the correlation between niche, problem, offer, and replyRate.
2. **Identify the top strategy:** Find the campaign with the highest replyRate. Create a 'strategy' insight detailing its niche, problem, and offer.
3. **Identify an opportunity:** Find a campaign with a low replyRate (but not zero). Create an 'optimization' insight suggesting a specific change to its 'problem' or 'offer' to align it more with successful campaigns.
4. **Identify a winning pattern:** Imagine a compelling subject line for one of the high-performing campaigns. Create a 'subject_line' insight based on this pattern.
5. Respond ONLY with a JSON object of the form {"insights": [...]} where each insight has the fields type, content, reason, performanceMetric, and optionally targetCampaignName and strategyDetails {niche, problem, offer}. No extra text, headings, or markdown.

**Campaign Data:**
%s

Now, provide exactly 3 insights in the specified JSON format.`, string(data))

	text, err := g.complete(ctx, prompt, 0.5, true)
	if err != nil {
		// Fall back to mock data on error, per the collaborator contract.
		ReportError("generate_insights", err, map[string]interface{}{"campaigns": len(campaigns)})
		return mockInsights(), nil
	}

	var payload struct {
		Insights []models.AIInsight `json:"insights"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil || len(payload.Insights) == 0 {
		return mockInsights(), nil
	}
	return payload.Insights, nil
}

func (g *OpenAIGenerator) GenerateStrategy(ctx context.Context, campaigns []models.Campaign) (models.StrategyDetails, error) {
	if len(campaigns) == 0 {
		return mockStrategy(), nil
	}

	data, err := json.MarshalIndent(campaigns, "", "  ")
	if err != nil {
		return mockStrategy(), nil
	}

	prompt := fmt.Sprintf(`You are a growth hacking AI. Analyze the following campaign data which includes niche, problem, offer, and performance metrics. Identify the characteristics of the most successful campaigns (those with the highest reply rates).

Based on your analysis, synthesize a *NEW* campaign strategy. Provide a target niche, a plausible location for that niche, a common problem they face, and a compelling offer to solve it.

Respond ONLY with a JSON object with the fields niche, location, problem, and offer, with no extra text or markdown.

**Campaign Data:**
%s`, string(data))

	text, err := g.complete(ctx, prompt, 0.8, true)
	if err != nil {
		ReportError("generate_strategy", err, map[string]interface{}{"campaigns": len(campaigns)})
		return mockStrategy(), nil
	}

	var strategy models.StrategyDetails
	if err := json.Unmarshal([]byte(text), &strategy); err != nil || strategy.Niche == "" {
		return mockStrategy(), nil
	}
	return strategy, nil
}

// ---- Mock generator ----

// MockGenerator stands in for the model API when no credential is
// configured. Its payloads are deterministic.
type MockGenerator struct{}

func (g *MockGenerator) GenerateColdEmail(_ context.Context, niche, location, problem, offer, _ string) (string, error) {
	return fmt.Sprintf(`--- MOCK EMAIL (API Key not configured) ---

Subject: A Personalized Offer for [Company Name]

Hi [First Name],

I'm reaching out because I noticed you're a key player in the %s space in %s. I understand that a common challenge is %s.

At [Your Company], we specialize in helping businesses like yours with %s. Our solution helps companies achieve [Specific Benefit 1] and [Specific Benefit 2], directly addressing the issues you might be facing.

Would you be open to a brief 15-minute chat next week to explore how we could help [Company Name]?

Best regards,

[Your Name]`, niche, location, problem, offer), nil
}

func (g *MockGenerator) GenerateFollowUpEmail(_ context.Context, niche, problem, offer, _ string) (string, error) {
	return fmt.Sprintf(`--- MOCK FOLLOW-UP EMAIL (API Key not configured) ---

Subject: Re: A Personalized Offer for [Company Name]

Hi [First Name],

Just wanted to quickly follow up on my previous email regarding our offer to help with %s.

We help %s companies like yours with %s, and I believe we could provide significant value.

Is this something that interests you?

Best regards,

[Your Name]`, problem, niche, offer), nil
}

func (g *MockGenerator) GenerateInsights(_ context.Context, _ []models.Campaign) ([]models.AIInsight, error) {
	return mockInsights(), nil
}

func (g *MockGenerator) GenerateStrategy(_ context.Context, _ []models.Campaign) (models.StrategyDetails, error) {
	return mockStrategy(), nil
}

func mockInsights() []models.AIInsight {
	return []models.AIInsight{
		{
			Type:              "strategy",
			Content:           "Target Fintech companies in the UK struggling with outdated legacy systems by offering custom software development.",
			Reason:            "The \"Fintech Prospecting\" campaign was your top performer, indicating a strong product-market fit in this area.",
			PerformanceMetric: "9.1% Reply Rate",
			StrategyDetails: &models.StrategyDetails{
				Niche:   "Fintech",
				Problem: "outdated legacy systems",
				Offer:   "custom software development",
			},
		},
		{
			Type:               "optimization",
			TargetCampaignName: "E-commerce Onboarding",
			Content:            "Refine the 'problem' to be more specific, like 'low conversion rates from abandoned carts'.",
			Reason:             "Your most successful campaigns address a very specific, high-value problem. The current problem is too general.",
			PerformanceMetric:  "4.1% Reply Rate",
		},
		{
			Type:              "subject_line",
			Content:           "A new way for [Company Name] to tackle high churn",
			Reason:            "Focusing on a specific problem in the subject line creates immediate relevance, as seen in your successful 'SaaS Outreach' campaign.",
			PerformanceMetric: "7.2% Reply Rate",
		},
	}
}

func mockStrategy() models.StrategyDetails {
	return models.StrategyDetails{
		Niche:    "B2B SaaS",
		Location: "USA",
		Problem:  "integrating with multiple third-party APIs",
		Offer:    "a unified API integration platform",
	}
}

// PersonalizeEmail substitutes the generator's placeholders with a lead's
// details.
func PersonalizeEmail(body, leadName, company string) string {
	first := leadName
	if i := strings.IndexByte(leadName, ' '); i > 0 {
		first = leadName[:i]
	}
	body = strings.ReplaceAll(body, "[First Name]", first)
	body = strings.ReplaceAll(body, "[Company Name]", company)
	return body
}
