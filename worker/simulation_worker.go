package worker

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/badoux/checkmail"
	"github.com/brianvoe/gofakeit/v6"

	"leadforge/config"
	"leadforge/models"
	"leadforge/store"
)

// TickSummary reports what one simulation step changed; it feeds the
// websocket progress stream and the logs.
type TickSummary struct {
	At             time.Time `json:"at"`
	LeadsGenerated int       `json:"leadsGenerated"`
	EmailsSent     int       `json:"emailsSent"`
	Replies        int       `json:"replies"`
	FollowUps      int       `json:"followUps"`
	Changed        bool      `json:"changed"`
}

// SimulationWorker advances all campaigns, leads and conversations by one
// discrete step per tick. Each tick works on a snapshot and commits only
// the collections it changed.
type SimulationWorker struct {
	store  *store.Store
	policy config.SimulationConfig
	logger *log.Logger

	rng   *rand.Rand
	faker *gofakeit.Faker
	now   func() time.Time

	mu          sync.Mutex
	subscribers map[chan TickSummary]struct{}
}

func NewSimulationWorker(st *store.Store, policy config.SimulationConfig, logger *log.Logger) *SimulationWorker {
	seed := time.Now().UnixNano()
	return &SimulationWorker{
		store:       st,
		policy:      policy,
		logger:      logger,
		rng:         rand.New(rand.NewSource(seed)),
		faker:       gofakeit.New(seed),
		now:         time.Now,
		subscribers: make(map[chan TickSummary]struct{}),
	}
}

// SetSeed makes lead counts, identities and reply draws deterministic.
func (sw *SimulationWorker) SetSeed(seed int64) {
	sw.rng = rand.New(rand.NewSource(seed))
	sw.faker = gofakeit.New(seed)
}

// SetClock overrides the wall clock, for tests.
func (sw *SimulationWorker) SetClock(now func() time.Time) {
	sw.now = now
}

// Start runs the tick loop until the context is cancelled.
func (sw *SimulationWorker) Start(ctx context.Context) {
	sw.logger.Println("Simulation worker started")

	ticker := time.NewTicker(sw.policy.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sw.logger.Println("Simulation worker shutting down...")
			return
		case <-ticker.C:
			summary := sw.Tick()
			if summary.Changed {
				sw.logger.Printf("Tick: generated=%d sent=%d replies=%d followups=%d",
					summary.LeadsGenerated, summary.EmailsSent, summary.Replies, summary.FollowUps)
			}
		}
	}
}

// Tick executes one simulation step synchronously. It is safe to call from
// the HTTP layer or tests without the ticker running.
func (sw *SimulationWorker) Tick() TickSummary {
	campaigns, leads, conversations := sw.store.Snapshot()
	followUpLimit := sw.store.FollowUpLimit()
	now := sw.now()

	summary := TickSummary{At: now}
	var campaignsChanged, leadsChanged, conversationsChanged bool
	contactedThisTick := make(map[string]bool)

	// Phase 1 and 2: lead generation and sending, per campaign.
	for i := range campaigns {
		campaign := &campaigns[i]

		if campaign.Status == models.CampaignStatusGenerating &&
			!campaign.GenerationStartTime.IsZero() &&
			now.Sub(campaign.GenerationStartTime) > sw.policy.GenerationDelay {

			count := sw.policy.LeadCountMin + sw.rng.Intn(sw.policy.LeadCountMax-sw.policy.LeadCountMin)
			leads = append(leads, sw.synthesizeLeads(*campaign, count)...)
			campaign.LeadsCount = count
			campaign.Status = models.CampaignStatusSending
			campaignsChanged = true
			leadsChanged = true
			summary.LeadsGenerated += count
		}

		if campaign.Status == models.CampaignStatusSending && campaign.SentCount < campaign.LeadsCount {
			// At most one send per campaign per tick.
			for j := range leads {
				lead := &leads[j]
				if lead.CampaignID != campaign.ID || lead.Status != models.LeadStatusNew {
					continue
				}

				lead.Status = models.LeadStatusContacted
				lead.LastContacted = now.Format("2006-01-02")
				lead.FollowUpIn = sw.policy.FollowUpTicks
				contactedThisTick[lead.ID] = true
				campaign.SentCount++

				seed := models.Message{
					ID:        fmt.Sprintf("msg-%s-1", lead.ID),
					From:      models.MessageFromUser,
					Subject:   fmt.Sprintf("Regarding %s", campaign.Niche),
					Body:      fmt.Sprintf("Hi %s, reaching out about %s...", firstName(lead.Name), campaign.Problem),
					Timestamp: now.Format("3:04:05 PM"),
				}
				conversations[lead.ID] = models.Conversation{LeadID: lead.ID, Messages: []models.Message{seed}}
				conversationsChanged = true

				if campaign.SentCount >= campaign.LeadsCount {
					campaign.Status = models.CampaignStatusCompleted
				}
				campaignsChanged = true
				leadsChanged = true
				summary.EmailsSent++
				break
			}
		}
	}

	// Phase 3: replies and follow-ups. Leads contacted this very tick sit
	// the phase out; a lead gets at most one of send or reply-check per tick.
	for j := range leads {
		lead := &leads[j]
		if lead.Status != models.LeadStatusContacted || contactedThisTick[lead.ID] {
			continue
		}

		if sw.rng.Float64() < sw.policy.ReplyChance {
			lead.Status = models.LeadStatusReplied
			for i := range campaigns {
				if campaigns[i].ID == lead.CampaignID {
					campaigns[i].RepliesCount++
					campaigns[i].RecalculateReplyRate()
					campaignsChanged = true
					break
				}
			}
			if conv, ok := conversations[lead.ID]; ok {
				conv.Messages = append(conv.Messages, models.Message{
					ID:        fmt.Sprintf("msg-%s-reply", lead.ID),
					From:      models.MessageFromLead,
					Body:      "This sounds interesting, tell me more.",
					Timestamp: now.Format("3:04:05 PM"),
				})
				conversations[lead.ID] = conv
				conversationsChanged = true
			}
			summary.Replies++
		} else {
			lead.FollowUpIn--
			if lead.FollowUpIn <= 0 && lead.FollowUpCount < followUpLimit {
				lead.FollowUpCount++
				lead.FollowUpIn = sw.policy.FollowUpTicks

				if conv, ok := conversations[lead.ID]; ok {
					conv.Messages = append(conv.Messages, models.Message{
						ID:        fmt.Sprintf("msg-%s-fu%d", lead.ID, lead.FollowUpCount),
						From:      models.MessageFromUser,
						Body:      "Just following up on my previous message.",
						Timestamp: now.Format("3:04:05 PM"),
					})
					conversations[lead.ID] = conv
					conversationsChanged = true
				}
				summary.FollowUps++
			}
		}
		leadsChanged = true
	}

	sw.store.CommitTick(
		campaigns, campaignsChanged,
		leads, leadsChanged,
		conversations, conversationsChanged,
	)

	summary.Changed = campaignsChanged || leadsChanged || conversationsChanged
	if summary.Changed {
		sw.broadcast(summary)
	}
	return summary
}

// synthesizeLeads fabricates a batch of New leads for a campaign that just
// finished its generation phase.
func (sw *SimulationWorker) synthesizeLeads(campaign models.Campaign, count int) []models.Lead {
	leads := make([]models.Lead, count)
	for j := 0; j < count; j++ {
		name := sw.faker.Name()
		email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@" + sw.faker.DomainName()
		if err := checkmail.ValidateFormat(email); err != nil {
			email = fmt.Sprintf("lead%d.%s@example.com", j, campaign.ID)
		}

		leads[j] = models.Lead{
			ID:            fmt.Sprintf("%s-lead-%d", campaign.ID, j),
			CampaignID:    campaign.ID,
			Name:          name,
			Company:       fmt.Sprintf("%s Co. %d", campaign.Niche, j+1),
			Email:         email,
			Status:        models.LeadStatusNew,
			LastContacted: "N/A",
		}
	}
	return leads
}

// Subscribe registers a tick feed consumer. The returned cancel func must
// be called when the consumer goes away.
func (sw *SimulationWorker) Subscribe() (<-chan TickSummary, func()) {
	ch := make(chan TickSummary, 8)

	sw.mu.Lock()
	sw.subscribers[ch] = struct{}{}
	sw.mu.Unlock()

	cancel := func() {
		sw.mu.Lock()
		delete(sw.subscribers, ch)
		sw.mu.Unlock()
	}
	return ch, cancel
}

func (sw *SimulationWorker) broadcast(summary TickSummary) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	for ch := range sw.subscribers {
		select {
		case ch <- summary:
		default: // slow consumer, drop
		}
	}
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}
