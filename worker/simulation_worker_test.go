package worker

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadforge/config"
	"leadforge/models"
	"leadforge/store"
)

func testPolicy() config.SimulationConfig {
	return config.SimulationConfig{
		TickInterval:    2 * time.Second,
		GenerationDelay: 5 * time.Second,
		LeadCountMin:    5,
		LeadCountMax:    10,
		ReplyChance:     0,
		FollowUpTicks:   3,
	}
}

func newTestWorker(t *testing.T, st *store.Store, policy config.SimulationConfig) *SimulationWorker {
	t.Helper()
	sw := NewSimulationWorker(st, policy, log.New(io.Discard, "", 0))
	sw.SetSeed(42)
	return sw
}

func TestTickGeneratesLeadsAfterDelay(t *testing.T) {
	st := store.New()
	t0 := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
	st.SetClock(func() time.Time { return t0 })

	campaign := st.CreateCampaign("SaaS", "USA", "high churn", "retention tooling")

	sw := newTestWorker(t, st, testPolicy())

	// Before the generation delay elapses nothing happens.
	sw.SetClock(func() time.Time { return t0.Add(3 * time.Second) })
	summary := sw.Tick()
	assert.Zero(t, summary.LeadsGenerated)
	fresh, _ := st.CampaignByID(campaign.ID)
	assert.Equal(t, models.CampaignStatusGenerating, fresh.Status)

	// After the delay the batch lands and sending begins.
	sw.SetClock(func() time.Time { return t0.Add(6 * time.Second) })
	summary = sw.Tick()

	require.True(t, summary.Changed)
	assert.GreaterOrEqual(t, summary.LeadsGenerated, 5)
	assert.Less(t, summary.LeadsGenerated, 10)

	fresh, _ = st.CampaignByID(campaign.ID)
	assert.Equal(t, models.CampaignStatusSending, fresh.Status)
	assert.Equal(t, summary.LeadsGenerated, fresh.LeadsCount)

	leads := st.Leads(campaign.ID)
	require.Len(t, leads, summary.LeadsGenerated)
	for _, l := range leads {
		assert.NotEmpty(t, l.Name)
		assert.NotEmpty(t, l.Email)
	}

	// The same tick also sent the first email.
	assert.Equal(t, 1, summary.EmailsSent)
	assert.Equal(t, 1, fresh.SentCount)
}

func TestTickSendsOneEmailPerCampaign(t *testing.T) {
	st := store.New()
	campaign := st.CreateCampaign("SaaS", "USA", "churn", "tooling")
	campaign.Status = models.CampaignStatusSending
	campaign.LeadsCount = 3
	_, ok := st.UpdateCampaign(campaign)
	require.True(t, ok)
	st.AppendLeads([]models.Lead{
		{ID: "l1", CampaignID: campaign.ID, Name: "Jane Doe", Status: models.LeadStatusNew, LastContacted: "N/A"},
		{ID: "l2", CampaignID: campaign.ID, Name: "John Roe", Status: models.LeadStatusNew, LastContacted: "N/A"},
		{ID: "l3", CampaignID: campaign.ID, Name: "Ann Poe", Status: models.LeadStatusNew, LastContacted: "N/A"},
	})

	sw := newTestWorker(t, st, testPolicy())
	summary := sw.Tick()

	assert.Equal(t, 1, summary.EmailsSent)

	fresh, _ := st.CampaignByID(campaign.ID)
	assert.Equal(t, 1, fresh.SentCount)
	assert.Equal(t, models.CampaignStatusSending, fresh.Status)

	lead, _ := st.LeadByID("l1")
	assert.Equal(t, models.LeadStatusContacted, lead.Status)
	assert.NotEqual(t, "N/A", lead.LastContacted)
	assert.Equal(t, 3, lead.FollowUpIn)

	conv, ok := st.ConversationForLead("l1")
	require.True(t, ok)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, models.MessageFromUser, conv.Messages[0].From)
	assert.Equal(t, "Regarding SaaS", conv.Messages[0].Subject)
	assert.Contains(t, conv.Messages[0].Body, "Hi Jane")
}

func TestCampaignCompletesOnFinalSend(t *testing.T) {
	st := store.New()
	campaign := st.CreateCampaign("SaaS", "USA", "churn", "tooling")
	campaign.Status = models.CampaignStatusSending
	campaign.LeadsCount = 1
	_, ok := st.UpdateCampaign(campaign)
	require.True(t, ok)
	st.AppendLeads([]models.Lead{
		{ID: "l1", CampaignID: campaign.ID, Name: "Jane Doe", Status: models.LeadStatusNew, LastContacted: "N/A"},
	})

	sw := newTestWorker(t, st, testPolicy())
	sw.Tick()

	// Completion happens in the same tick as the final send.
	fresh, _ := st.CampaignByID(campaign.ID)
	assert.Equal(t, models.CampaignStatusCompleted, fresh.Status)
	assert.Equal(t, fresh.LeadsCount, fresh.SentCount)
}

func TestFreshlyContactedLeadSkipsReplyCheck(t *testing.T) {
	st := store.New()
	campaign := st.CreateCampaign("SaaS", "USA", "churn", "tooling")
	campaign.Status = models.CampaignStatusSending
	campaign.LeadsCount = 1
	_, ok := st.UpdateCampaign(campaign)
	require.True(t, ok)
	st.AppendLeads([]models.Lead{
		{ID: "l1", CampaignID: campaign.ID, Name: "Jane Doe", Status: models.LeadStatusNew, LastContacted: "N/A"},
	})

	policy := testPolicy()
	policy.ReplyChance = 1 // every eligible lead replies
	sw := newTestWorker(t, st, policy)
	summary := sw.Tick()

	// The lead was sent to this tick, so it cannot also reply this tick.
	assert.Equal(t, 1, summary.EmailsSent)
	assert.Zero(t, summary.Replies)
	lead, _ := st.LeadByID("l1")
	assert.Equal(t, models.LeadStatusContacted, lead.Status)

	// The next tick it replies.
	summary = sw.Tick()
	assert.Equal(t, 1, summary.Replies)
	lead, _ = st.LeadByID("l1")
	assert.Equal(t, models.LeadStatusReplied, lead.Status)

	fresh, _ := st.CampaignByID(campaign.ID)
	assert.Equal(t, 1, fresh.RepliesCount)
	assert.InDelta(t, 100.0, fresh.ReplyRate, 0.0001)

	conv, _ := st.ConversationForLead("l1")
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, models.MessageFromLead, conv.Messages[1].From)
}

func TestFollowUpFiresWhenCounterExpires(t *testing.T) {
	st := store.New()
	campaign := st.CreateCampaign("SaaS", "USA", "churn", "tooling")
	campaign.Status = models.CampaignStatusCompleted
	campaign.LeadsCount = 1
	campaign.SentCount = 1
	_, ok := st.UpdateCampaign(campaign)
	require.True(t, ok)
	st.AppendLeads([]models.Lead{{
		ID:         "l1",
		CampaignID: campaign.ID,
		Name:       "Jane Doe",
		Status:     models.LeadStatusContacted,
		FollowUpIn: 1,
	}})
	_, ok = st.SendReply("l1", "Hi Jane, reaching out about churn...")
	require.True(t, ok)

	sw := newTestWorker(t, st, testPolicy())
	summary := sw.Tick()

	assert.Equal(t, 1, summary.FollowUps)
	lead, _ := st.LeadByID("l1")
	assert.Equal(t, 1, lead.FollowUpCount)
	assert.Equal(t, 3, lead.FollowUpIn) // counter resets

	conv, ok := st.ConversationForLead("l1")
	require.True(t, ok)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, models.MessageFromUser, conv.Messages[1].From)
	assert.Contains(t, conv.Messages[1].Body, "following up")

	// Two more ticks only decrement the counter.
	sw.Tick()
	sw.Tick()
	lead, _ = st.LeadByID("l1")
	assert.Equal(t, 1, lead.FollowUpCount)
	assert.Equal(t, 1, lead.FollowUpIn)
}

func TestFollowUpCountIsCapped(t *testing.T) {
	st := store.New()
	campaign := st.CreateCampaign("SaaS", "USA", "churn", "tooling")
	campaign.Status = models.CampaignStatusCompleted
	campaign.LeadsCount = 1
	campaign.SentCount = 1
	_, ok := st.UpdateCampaign(campaign)
	require.True(t, ok)

	limit := st.FollowUpLimit()
	st.AppendLeads([]models.Lead{{
		ID:            "l1",
		CampaignID:    campaign.ID,
		Name:          "Jane Doe",
		Status:        models.LeadStatusContacted,
		FollowUpIn:    1,
		FollowUpCount: limit,
	}})

	sw := newTestWorker(t, st, testPolicy())
	summary := sw.Tick()

	assert.Zero(t, summary.FollowUps)
	lead, _ := st.LeadByID("l1")
	assert.Equal(t, limit, lead.FollowUpCount)
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	run := func() int {
		st := store.New()
		t0 := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
		st.SetClock(func() time.Time { return t0 })
		st.CreateCampaign("SaaS", "USA", "churn", "tooling")

		sw := newTestWorker(t, st, testPolicy())
		sw.SetClock(func() time.Time { return t0.Add(6 * time.Second) })
		return sw.Tick().LeadsGenerated
	}

	assert.Equal(t, run(), run())
}

func TestSentCountNeverExceedsLeadsCount(t *testing.T) {
	st := store.New()
	campaign := st.CreateCampaign("SaaS", "USA", "churn", "tooling")
	campaign.Status = models.CampaignStatusSending
	campaign.LeadsCount = 2
	_, ok := st.UpdateCampaign(campaign)
	require.True(t, ok)
	st.AppendLeads([]models.Lead{
		{ID: "l1", CampaignID: campaign.ID, Name: "Jane Doe", Status: models.LeadStatusNew},
		{ID: "l2", CampaignID: campaign.ID, Name: "John Roe", Status: models.LeadStatusNew},
	})

	sw := newTestWorker(t, st, testPolicy())
	for i := 0; i < 10; i++ {
		sw.Tick()
	}

	fresh, _ := st.CampaignByID(campaign.ID)
	assert.LessOrEqual(t, fresh.SentCount, fresh.LeadsCount)
	assert.Equal(t, models.CampaignStatusCompleted, fresh.Status)
}

func TestSubscribeReceivesTickSummaries(t *testing.T) {
	st := store.New()
	campaign := st.CreateCampaign("SaaS", "USA", "churn", "tooling")
	campaign.Status = models.CampaignStatusSending
	campaign.LeadsCount = 1
	_, ok := st.UpdateCampaign(campaign)
	require.True(t, ok)
	st.AppendLeads([]models.Lead{
		{ID: "l1", CampaignID: campaign.ID, Name: "Jane Doe", Status: models.LeadStatusNew},
	})

	sw := newTestWorker(t, st, testPolicy())
	ticks, cancel := sw.Subscribe()
	defer cancel()

	sw.Tick()

	select {
	case summary := <-ticks:
		assert.Equal(t, 1, summary.EmailsSent)
	default:
		t.Fatal("expected a tick summary on the subscription channel")
	}
}
