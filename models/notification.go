package models

type NotificationKind string

const (
	NotificationLead     NotificationKind = "lead"
	NotificationReply    NotificationKind = "reply"
	NotificationCampaign NotificationKind = "campaign"
)

// Notification is a derived activity entry; notifications are computed from
// current state, not stored.
type Notification struct {
	Kind NotificationKind `json:"kind"`
	Text string           `json:"text"`
	Time string           `json:"time"`
}
