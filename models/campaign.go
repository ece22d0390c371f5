package models

import "time"

type CampaignStatus string

const (
	CampaignStatusGenerating CampaignStatus = "Generating Leads"
	CampaignStatusActive     CampaignStatus = "Active"
	CampaignStatusCompleted  CampaignStatus = "Completed"
	CampaignStatusScheduled  CampaignStatus = "Scheduled"
	CampaignStatusSending    CampaignStatus = "Sending"
	CampaignStatusPaused     CampaignStatus = "Paused"
)

// TimeWindow is a daily sending window in "HH:MM" local time.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CampaignSchedule is accepted from the UI but not enforced by the
// simulation; it is carried for display only.
type CampaignSchedule struct {
	StartDate    string     `json:"startDate"`
	TimeWindow   TimeWindow `json:"timeWindow"`
	EmailsPerDay int        `json:"emailsPerDay"`
}

// Campaign is a targeted outreach effort. ReplyRate is derived from
// RepliesCount/SentCount and must never be written directly by callers.
type Campaign struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Niche    string         `json:"niche"`
	Location string         `json:"location"`
	Problem  string         `json:"problem"`
	Offer    string         `json:"offer"`
	Status   CampaignStatus `json:"status"`

	LeadsCount   int     `json:"leadsCount"`
	SentCount    int     `json:"sentCount"`
	RepliesCount int     `json:"repliesCount"`
	ReplyRate    float64 `json:"replyRate"`
	CreatedAt    string  `json:"createdAt"`

	Schedule *CampaignSchedule `json:"schedule,omitempty"`

	// GenerationStartTime marks when the lead-generation phase began;
	// zero once the campaign has left the Generating status.
	GenerationStartTime time.Time `json:"generationStartTime,omitempty"`
}

// RecalculateReplyRate recomputes the derived rate. Zero sends means zero rate.
func (c *Campaign) RecalculateReplyRate() {
	if c.SentCount == 0 {
		c.ReplyRate = 0
		return
	}
	c.ReplyRate = float64(c.RepliesCount) / float64(c.SentCount) * 100
}
