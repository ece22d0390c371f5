package models

// StrategyDetails carries the structured payload of a "strategy" insight,
// ready to pre-fill the campaign creation form.
type StrategyDetails struct {
	Niche    string `json:"niche"`
	Location string `json:"location,omitempty"`
	Problem  string `json:"problem"`
	Offer    string `json:"offer"`
}

// AIInsight is one analytics recommendation produced by the content
// generator.
type AIInsight struct {
	Type               string           `json:"type"` // subject_line, template, strategy, optimization
	Content            string           `json:"content"`
	Reason             string           `json:"reason"`
	PerformanceMetric  string           `json:"performanceMetric"`
	TargetCampaignName string           `json:"targetCampaignName,omitempty"`
	StrategyDetails    *StrategyDetails `json:"strategyDetails,omitempty"`
}

type MonthlyPerformance struct {
	Name      string  `json:"name"`
	OpenRate  float64 `json:"openRate"`
	ReplyRate float64 `json:"replyRate"`
	ClickRate float64 `json:"clickRate"`
}

type CampaignPerformance struct {
	Name    string `json:"name"`
	Sent    int    `json:"sent"`
	Opened  int    `json:"opened"`
	Clicks  int    `json:"clicks"`
	Replied int    `json:"replied"`
	Bounces int    `json:"bounces"`
}

type LeadStatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// AnalyticsData is the full payload backing the analytics screen.
type AnalyticsData struct {
	MonthlyPerformance     []MonthlyPerformance  `json:"monthlyPerformance"`
	CampaignPerformance    []CampaignPerformance `json:"campaignPerformance"`
	LeadStatusDistribution []LeadStatusCount     `json:"leadStatusDistribution"`
	AIInsights             []AIInsight           `json:"aiInsights"`
}
