package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"leadforge/models"
)

// Store is the single owner of all application state. Every read crossing
// the package boundary returns copies and every mutation goes through a
// named operation holding the one lock, so the simulation tick and user
// actions never observe each other's partial writes.
type Store struct {
	mu sync.Mutex

	campaigns     []models.Campaign
	leads         []models.Lead
	conversations map[string]models.Conversation

	settings    models.UserSettings
	plan        models.PlanName
	integration *models.Integration

	selectedCampaignID string
	pendingStrategy    *models.StrategyDetails

	now func() time.Time
}

// New returns a store holding the session defaults. State is memory-only;
// a restart starts over from exactly this.
func New() *Store {
	return &Store{
		conversations: make(map[string]models.Conversation),
		settings:      models.DefaultUserSettings(),
		plan:          models.PlanPro,
		now:           time.Now,
	}
}

// SetClock overrides the wall clock, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) today() string {
	return s.now().Format("2006-01-02")
}

func (s *Store) clock() string {
	return s.now().Format("3:04:05 PM")
}

// ---- Campaigns ----

// CreateCampaign builds a new campaign in the Generating status with zeroed
// counters and prepends it, most-recent-first.
func (s *Store) CreateCampaign(niche, location, problem, offer string) models.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaign := models.Campaign{
		ID:                  uuid.NewString(),
		Name:                fmt.Sprintf("%s Campaign", niche),
		Niche:               niche,
		Location:            location,
		Problem:             problem,
		Offer:               offer,
		Status:              models.CampaignStatusGenerating,
		CreatedAt:           s.today(),
		GenerationStartTime: s.now(),
	}
	s.campaigns = append([]models.Campaign{campaign}, s.campaigns...)
	return campaign
}

// Campaigns returns a copy of the campaign collection.
func (s *Store) Campaigns() []models.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCampaigns(s.campaigns)
}

// CampaignByID returns a copy of one campaign.
func (s *Store) CampaignByID(id string) (models.Campaign, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.campaigns {
		if c.ID == id {
			return c, true
		}
	}
	return models.Campaign{}, false
}

// UpdateCampaign replaces the campaign with a matching id. The derived
// reply rate is always recomputed, never taken from the caller. If the
// updated campaign is the selected one, the selection follows it.
func (s *Store) UpdateCampaign(updated models.Campaign) (models.Campaign, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.campaigns {
		if c.ID == updated.ID {
			updated.RecalculateReplyRate()
			s.campaigns[i] = updated
			return updated, true
		}
	}
	return models.Campaign{}, false
}

// SelectCampaign marks a campaign as the detail view target; while set, the
// main content area renders the campaign detail regardless of the resolved
// view.
func (s *Store) SelectCampaign(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.campaigns {
		if c.ID == id {
			s.selectedCampaignID = id
			return true
		}
	}
	return false
}

// ClearSelection returns routing to the named views.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCampaignID = ""
}

// SelectedCampaign returns the detail-view campaign, if any.
func (s *Store) SelectedCampaign() (models.Campaign, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedCampaignID == "" {
		return models.Campaign{}, false
	}
	for _, c := range s.campaigns {
		if c.ID == s.selectedCampaignID {
			return c, true
		}
	}
	return models.Campaign{}, false
}

// ---- Leads ----

// Leads returns a copy of the lead collection, optionally filtered by
// campaign id.
func (s *Store) Leads(campaignID string) []models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		if campaignID != "" && l.CampaignID != campaignID {
			continue
		}
		out = append(out, copyLead(l))
	}
	return out
}

// LeadByID returns a copy of one lead.
func (s *Store) LeadByID(id string) (models.Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.leads {
		if l.ID == id {
			return copyLead(l), true
		}
	}
	return models.Lead{}, false
}

// ToggleLeadTag adds the tag if absent, removes it if present. The tag set
// holds no duplicates.
func (s *Store) ToggleLeadTag(leadID string, tag models.LeadTag) (models.Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.leads {
		if s.leads[i].ID != leadID {
			continue
		}
		if s.leads[i].HasTag(tag) {
			kept := s.leads[i].Tags[:0:0]
			for _, t := range s.leads[i].Tags {
				if t != tag {
					kept = append(kept, t)
				}
			}
			s.leads[i].Tags = kept
		} else {
			s.leads[i].Tags = append(s.leads[i].Tags, tag)
		}
		return copyLead(s.leads[i]), true
	}
	return models.Lead{}, false
}

// ApplyDraft records that a generated email was sent to the lead: the lead
// becomes Contacted and the contact date is stamped. FollowUpCount advances
// only when the draft was a follow-up, i.e. the lead had already been
// contacted before.
func (s *Store) ApplyDraft(leadID string) (models.Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.leads {
		if s.leads[i].ID != leadID {
			continue
		}
		if s.leads[i].Status != models.LeadStatusNew {
			s.leads[i].FollowUpCount++
		}
		s.leads[i].Status = models.LeadStatusContacted
		s.leads[i].LastContacted = s.today()
		return copyLead(s.leads[i]), true
	}
	return models.Lead{}, false
}

// ---- Conversations ----

// Conversations returns copies of every thread.
func (s *Store) Conversations() []models.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		out = append(out, copyConversation(c))
	}
	return out
}

// ConversationForLead returns the thread for one lead.
func (s *Store) ConversationForLead(leadID string) (models.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[leadID]
	if !ok {
		return models.Conversation{}, false
	}
	return copyConversation(c), true
}

// SendReply appends a user-authored message to the lead's thread, creating
// the thread if absent, and stamps the lead's contact date.
func (s *Store) SendReply(leadID, body string) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.leads {
		if s.leads[i].ID == leadID {
			s.leads[i].LastContacted = s.today()
			found = true
			break
		}
	}
	if !found {
		return models.Message{}, false
	}

	msg := models.Message{
		ID:        fmt.Sprintf("msg-manual-%s", uuid.NewString()),
		From:      models.MessageFromUser,
		Body:      body,
		Timestamp: s.clock(),
	}
	conv := s.conversations[leadID]
	conv.LeadID = leadID
	conv.Messages = append(conv.Messages, msg)
	s.conversations[leadID] = conv
	return msg, true
}

// ---- Settings / plan / integration ----

// Settings returns a copy of the current settings.
func (s *Store) Settings() models.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SaveSettings commits a whole settings struct atomically.
func (s *Store) SaveSettings(settings models.UserSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// RegenerateAPIKey replaces the security API key and returns the new value.
func (s *Store) RegenerateAPIKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Security.APIKey = models.NewAPIKey()
	return s.settings.Security.APIKey
}

// FollowUpLimit is the configured maximum follow-ups per lead.
func (s *Store) FollowUpLimit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.FollowUp.Count
}

// Plan returns the current plan name.
func (s *Store) Plan() models.PlanName {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// SetPlan records a plan change.
func (s *Store) SetPlan(plan models.PlanName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = plan
}

// Integration returns the connected provider link, if any.
func (s *Store) Integration() *models.Integration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.integration == nil {
		return nil
	}
	copied := *s.integration
	return &copied
}

// SetIntegration records or clears the provider link.
func (s *Store) SetIntegration(integration *models.Integration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if integration == nil {
		s.integration = nil
		return
	}
	copied := *integration
	s.integration = &copied
}

// SetPendingStrategy stages a synthesized strategy to pre-fill the next
// campaign creation form.
func (s *Store) SetPendingStrategy(strategy models.StrategyDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingStrategy = &strategy
}

// TakePendingStrategy returns and clears the staged strategy.
func (s *Store) TakePendingStrategy() (models.StrategyDetails, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingStrategy == nil {
		return models.StrategyDetails{}, false
	}
	strategy := *s.pendingStrategy
	s.pendingStrategy = nil
	return strategy, true
}

// ---- Simulation snapshot/commit ----

// Snapshot hands the simulation engine deep copies of the three mutable
// collections so a tick computes all updates before committing any.
func (s *Store) Snapshot() ([]models.Campaign, []models.Lead, map[string]models.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	campaigns := copyCampaigns(s.campaigns)
	leads := make([]models.Lead, len(s.leads))
	for i, l := range s.leads {
		leads[i] = copyLead(l)
	}
	conversations := make(map[string]models.Conversation, len(s.conversations))
	for id, c := range s.conversations {
		conversations[id] = copyConversation(c)
	}
	return campaigns, leads, conversations
}

// CommitTick replaces each collection only when the tick changed it,
// minimizing redundant notifications to readers.
func (s *Store) CommitTick(
	campaigns []models.Campaign, campaignsChanged bool,
	leads []models.Lead, leadsChanged bool,
	conversations map[string]models.Conversation, conversationsChanged bool,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if campaignsChanged {
		s.campaigns = campaigns
	}
	if leadsChanged {
		s.leads = leads
	}
	if conversationsChanged {
		s.conversations = conversations
	}
}

// ---- copy helpers ----

func copyCampaigns(in []models.Campaign) []models.Campaign {
	out := make([]models.Campaign, len(in))
	for i, c := range in {
		if c.Schedule != nil {
			schedule := *c.Schedule
			c.Schedule = &schedule
		}
		out[i] = c
	}
	return out
}

func copyLead(l models.Lead) models.Lead {
	if l.Tags != nil {
		l.Tags = append([]models.LeadTag(nil), l.Tags...)
	}
	return l
}

func copyConversation(c models.Conversation) models.Conversation {
	c.Messages = append([]models.Message(nil), c.Messages...)
	return c
}

// ThreadTitle is the subject of the first message, or a fallback built from
// the lead name.
func ThreadTitle(conv models.Conversation, leadName string) string {
	if len(conv.Messages) > 0 && conv.Messages[0].Subject != "" {
		return conv.Messages[0].Subject
	}
	return strings.TrimSpace("Conversation with " + leadName)
}

// AppendLeads is used by the simulation commit path in tests and seeds;
// it appends synthesized leads directly.
func (s *Store) AppendLeads(leads []models.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, leads...)
}
