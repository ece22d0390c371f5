package models

import "github.com/google/uuid"

type ProfileSettings struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Avatar string `json:"avatar"`
}

type UISettings struct {
	DarkMode bool   `json:"darkMode"`
	Language string `json:"language" validate:"required"`
}

type AISettings struct {
	Tone          string `json:"tone" validate:"required,oneof=Professional Friendly Persuasive Casual"`
	EmailLength   string `json:"emailLength" validate:"required,oneof='Short & Punchy' Medium Detailed"`
	FollowUpStyle string `json:"followUpStyle" validate:"required,oneof='Gentle Reminder' 'Value Add' 'Direct Question'"`
}

type EmailSettings struct {
	Signature      string     `json:"signature"`
	DailySendLimit int        `json:"dailySendLimit" validate:"min=1"`
	UseRandomDelay bool       `json:"useRandomDelay"`
	SendingHours   TimeWindow `json:"sendingHours"`
}

// FollowUpSettings bounds the automated follow-up cycle: Count caps every
// lead's FollowUpCount.
type FollowUpSettings struct {
	Count                     int  `json:"count" validate:"min=0,max=10"`
	DelayDays                 int  `json:"delayDays" validate:"min=1"`
	OverrideWithCustomReplies bool `json:"overrideWithCustomReplies"`
}

type CampaignDefaults struct {
	Niche         string `json:"niche"`
	Location      string `json:"location"`
	OfferTemplate string `json:"offerTemplate"`
	CTATemplate   string `json:"ctaTemplate"`
}

type SecuritySettings struct {
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
	APIKey           string `json:"apiKey"`
}

// UserSettings is the single process-wide configuration object. The settings
// view stages edits locally and commits the whole struct on save.
type UserSettings struct {
	Profile          ProfileSettings  `json:"profile" validate:"required"`
	UI               UISettings       `json:"ui"`
	AI               AISettings       `json:"ai"`
	Email            EmailSettings    `json:"email"`
	FollowUp         FollowUpSettings `json:"followUp"`
	CampaignDefaults CampaignDefaults `json:"campaignDefaults"`
	Security         SecuritySettings `json:"security"`
}

// NewAPIKey mints a fresh key in the product's sk-lfai prefix scheme.
func NewAPIKey() string {
	return "sk-lfai-" + uuid.NewString()
}

// DefaultUserSettings returns the session defaults; state is memory-only so
// these are what every session starts from.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Profile: ProfileSettings{
			Name:   "Alex Starr",
			Email:  "alex.starr@example.com",
			Avatar: "https://picsum.photos/100/100",
		},
		UI: UISettings{
			DarkMode: true,
			Language: "English",
		},
		AI: AISettings{
			Tone:          "Persuasive",
			EmailLength:   "Medium",
			FollowUpStyle: "Gentle Reminder",
		},
		Email: EmailSettings{
			Signature:      "Best regards,\nAlex Starr",
			DailySendLimit: 100,
			UseRandomDelay: true,
			SendingHours:   TimeWindow{Start: "09:00", End: "17:00"},
		},
		FollowUp: FollowUpSettings{
			Count:                     3,
			DelayDays:                 2,
			OverrideWithCustomReplies: true,
		},
		CampaignDefaults: CampaignDefaults{
			Niche:         "SaaS",
			Location:      "USA",
			OfferTemplate: "We help SaaS companies reduce churn with our analytics platform.",
			CTATemplate:   "Are you available for a quick 15-minute chat next week?",
		},
		Security: SecuritySettings{
			TwoFactorEnabled: false,
			APIKey:           NewAPIKey(),
		},
	}
}
