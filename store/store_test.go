package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadforge/models"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestCreateCampaign(t *testing.T) {
	s := New()
	s.SetClock(fixedClock())

	c := s.CreateCampaign("SaaS", "USA", "high churn", "retention tooling")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "SaaS Campaign", c.Name)
	assert.Equal(t, models.CampaignStatusGenerating, c.Status)
	assert.Equal(t, 0, c.LeadsCount)
	assert.Equal(t, 0, c.SentCount)
	assert.Equal(t, 0, c.RepliesCount)
	assert.Equal(t, 0.0, c.ReplyRate)
	assert.Equal(t, "2025-03-14", c.CreatedAt)
	assert.False(t, c.GenerationStartTime.IsZero())
}

func TestCampaignsAreMostRecentFirst(t *testing.T) {
	s := New()
	first := s.CreateCampaign("Fintech", "UK", "legacy systems", "custom dev")
	second := s.CreateCampaign("E-commerce", "DE", "cart abandonment", "recovery flows")

	campaigns := s.Campaigns()
	require.Len(t, campaigns, 2)
	assert.Equal(t, second.ID, campaigns[0].ID)
	assert.Equal(t, first.ID, campaigns[1].ID)
}

func TestUpdateCampaignRecomputesReplyRate(t *testing.T) {
	s := New()
	c := s.CreateCampaign("SaaS", "USA", "churn", "tooling")

	c.SentCount = 200
	c.RepliesCount = 10
	c.ReplyRate = 99.9 // must be ignored

	updated, ok := s.UpdateCampaign(c)
	require.True(t, ok)
	assert.InDelta(t, 5.0, updated.ReplyRate, 0.0001)

	_, ok = s.UpdateCampaign(models.Campaign{ID: "missing"})
	assert.False(t, ok)
}

func TestCampaignSelection(t *testing.T) {
	s := New()
	c := s.CreateCampaign("SaaS", "USA", "churn", "tooling")

	assert.False(t, s.SelectCampaign("missing"))
	require.True(t, s.SelectCampaign(c.ID))

	selected, ok := s.SelectedCampaign()
	require.True(t, ok)
	assert.Equal(t, c.ID, selected.ID)

	// Selection follows campaign updates.
	c.Status = models.CampaignStatusPaused
	_, ok = s.UpdateCampaign(c)
	require.True(t, ok)
	selected, ok = s.SelectedCampaign()
	require.True(t, ok)
	assert.Equal(t, models.CampaignStatusPaused, selected.Status)

	s.ClearSelection()
	_, ok = s.SelectedCampaign()
	assert.False(t, ok)
}

func TestToggleLeadTag(t *testing.T) {
	s := New()
	s.AppendLeads([]models.Lead{{ID: "l1", Name: "Jane Doe", Status: models.LeadStatusNew}})

	lead, ok := s.ToggleLeadTag("l1", models.LeadTagHot)
	require.True(t, ok)
	assert.Equal(t, []models.LeadTag{models.LeadTagHot}, lead.Tags)

	lead, ok = s.ToggleLeadTag("l1", models.LeadTagWarm)
	require.True(t, ok)
	assert.ElementsMatch(t, []models.LeadTag{models.LeadTagHot, models.LeadTagWarm}, lead.Tags)

	// Toggling twice restores the original set.
	lead, ok = s.ToggleLeadTag("l1", models.LeadTagWarm)
	require.True(t, ok)
	assert.Equal(t, []models.LeadTag{models.LeadTagHot}, lead.Tags)

	_, ok = s.ToggleLeadTag("missing", models.LeadTagHot)
	assert.False(t, ok)
}

func TestApplyDraft(t *testing.T) {
	s := New()
	s.SetClock(fixedClock())
	s.AppendLeads([]models.Lead{{
		ID:            "l1",
		Status:        models.LeadStatusNew,
		LastContacted: "N/A",
	}})

	// First draft against a New lead is a cold email; no follow-up counted.
	lead, ok := s.ApplyDraft("l1")
	require.True(t, ok)
	assert.Equal(t, models.LeadStatusContacted, lead.Status)
	assert.Equal(t, "2025-03-14", lead.LastContacted)
	assert.Equal(t, 0, lead.FollowUpCount)

	// Subsequent drafts are follow-ups.
	lead, ok = s.ApplyDraft("l1")
	require.True(t, ok)
	assert.Equal(t, 1, lead.FollowUpCount)
}

func TestSendReplyCreatesThread(t *testing.T) {
	s := New()
	s.SetClock(fixedClock())
	s.AppendLeads([]models.Lead{{ID: "l1", Name: "Jane Doe", LastContacted: "N/A"}})

	msg, ok := s.SendReply("l1", "Thanks for getting back to me.")
	require.True(t, ok)
	assert.Equal(t, models.MessageFromUser, msg.From)
	assert.Equal(t, "Thanks for getting back to me.", msg.Body)

	conv, ok := s.ConversationForLead("l1")
	require.True(t, ok)
	require.Len(t, conv.Messages, 1)

	lead, _ := s.LeadByID("l1")
	assert.Equal(t, "2025-03-14", lead.LastContacted)

	_, ok = s.SendReply("missing", "hello")
	assert.False(t, ok)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := New()

	settings := s.Settings()
	settings.Profile.Name = "Morgan Reyes"
	s.SaveSettings(settings)

	assert.Equal(t, "Morgan Reyes", s.Settings().Profile.Name)
}

func TestRegenerateAPIKey(t *testing.T) {
	s := New()
	before := s.Settings().Security.APIKey

	key := s.RegenerateAPIKey()
	assert.NotEqual(t, before, key)
	assert.Contains(t, key, "sk-lfai-")
	assert.Equal(t, key, s.Settings().Security.APIKey)
}

func TestDefaultPlanIsPro(t *testing.T) {
	s := New()
	assert.Equal(t, models.PlanPro, s.Plan())

	s.SetPlan(models.PlanAgency)
	assert.Equal(t, models.PlanAgency, s.Plan())
}

func TestPendingStrategyIsTakenOnce(t *testing.T) {
	s := New()

	_, ok := s.TakePendingStrategy()
	assert.False(t, ok)

	s.SetPendingStrategy(models.StrategyDetails{Niche: "Fintech", Problem: "legacy systems", Offer: "custom dev"})

	strategy, ok := s.TakePendingStrategy()
	require.True(t, ok)
	assert.Equal(t, "Fintech", strategy.Niche)

	_, ok = s.TakePendingStrategy()
	assert.False(t, ok)
}

func TestSnapshotIsIsolatedFromStore(t *testing.T) {
	s := New()
	c := s.CreateCampaign("SaaS", "USA", "churn", "tooling")
	s.AppendLeads([]models.Lead{{ID: "l1", CampaignID: c.ID, Status: models.LeadStatusNew}})

	campaigns, leads, conversations := s.Snapshot()
	campaigns[0].Status = models.CampaignStatusCompleted
	leads[0].Status = models.LeadStatusReplied
	conversations["l1"] = models.Conversation{LeadID: "l1"}

	fresh, _ := s.CampaignByID(c.ID)
	assert.Equal(t, models.CampaignStatusGenerating, fresh.Status)
	lead, _ := s.LeadByID("l1")
	assert.Equal(t, models.LeadStatusNew, lead.Status)
	_, ok := s.ConversationForLead("l1")
	assert.False(t, ok)
}

func TestCommitTickReplacesOnlyChangedCollections(t *testing.T) {
	s := New()
	c := s.CreateCampaign("SaaS", "USA", "churn", "tooling")

	campaigns, leads, conversations := s.Snapshot()
	campaigns[0].Status = models.CampaignStatusSending
	leads = append(leads, models.Lead{ID: "l1", CampaignID: c.ID, Status: models.LeadStatusNew})

	s.CommitTick(campaigns, true, leads, false, conversations, false)

	fresh, _ := s.CampaignByID(c.ID)
	assert.Equal(t, models.CampaignStatusSending, fresh.Status)
	assert.Empty(t, s.Leads(""))
}

func TestThreadTitle(t *testing.T) {
	conv := models.Conversation{Messages: []models.Message{{Subject: "Regarding SaaS"}}}
	assert.Equal(t, "Regarding SaaS", ThreadTitle(conv, "Jane Doe"))
	assert.Equal(t, "Conversation with Jane Doe", ThreadTitle(models.Conversation{}, "Jane Doe"))
}
