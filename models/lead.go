package models

type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "New"
	LeadStatusContacted     LeadStatus = "Contacted"
	LeadStatusReplied       LeadStatus = "Replied"
	LeadStatusInterested    LeadStatus = "Interested"
	LeadStatusNotInterested LeadStatus = "Not Interested"
)

// LeadTag is a user-assigned temperature label, independent of status.
type LeadTag string

const (
	LeadTagHot  LeadTag = "Hot"
	LeadTagWarm LeadTag = "Warm"
	LeadTagCold LeadTag = "Cold"
)

// Lead is a prospective contact belonging to exactly one campaign.
type Lead struct {
	ID         string     `json:"id"`
	CampaignID string     `json:"campaignId"`
	Name       string     `json:"name"`
	Company    string     `json:"company"`
	Email      string     `json:"email"`
	Status     LeadStatus `json:"status"`

	// LastContacted is a display date ("2006-01-02") or "N/A" before first contact.
	LastContacted string    `json:"lastContacted"`
	FollowUpCount int       `json:"followUpCount"`
	Tags          []LeadTag `json:"tags,omitempty"`

	// FollowUpIn counts simulation ticks until the next follow-up is eligible.
	FollowUpIn int `json:"followUpIn,omitempty"`
}

// HasTag reports whether the tag is currently assigned.
func (l *Lead) HasTag(tag LeadTag) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
