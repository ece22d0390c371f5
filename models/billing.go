package models

type PlanName string

const (
	PlanFree    PlanName = "Free"
	PlanStarter PlanName = "Starter"
	PlanPro     PlanName = "Pro"
	PlanAgency  PlanName = "Agency"
)

// Plan describes one tier of the catalog shown on the billing screen.
type Plan struct {
	PlanName    PlanName `json:"planName"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	IsPopular   bool     `json:"isPopular,omitempty"`
	CTAText     string   `json:"ctaText"`
}

// PlanCatalog returns the fixed plan tiers.
func PlanCatalog() []Plan {
	return []Plan{
		{
			PlanName:    PlanFree,
			Price:       "$0",
			Description: "For individuals just starting out.",
			Features: []string{
				"5 leads/day",
				"Basic email generation",
				"1 active campaign",
				"Community support",
			},
			CTAText: "Choose Plan",
		},
		{
			PlanName:    PlanStarter,
			Price:       "$29",
			Description: "For small teams and freelancers.",
			Features: []string{
				"100 leads/month",
				"AI email generation",
				"5 active campaigns",
				"CRM integration",
				"Email support",
			},
			CTAText: "Upgrade to Starter",
		},
		{
			PlanName:    PlanPro,
			Price:       "$69",
			Description: "For growing businesses and agencies.",
			Features: []string{
				"Unlimited leads",
				"Full CRM functionality",
				"Advanced AI personalization",
				"A/B testing & Analytics",
				"Priority support",
			},
			IsPopular: true,
			CTAText:   "Upgrade to Pro",
		},
		{
			PlanName:    PlanAgency,
			Price:       "$149",
			Description: "For agencies managing multiple clients.",
			Features: []string{
				"Everything in Pro",
				"Multi-client workspaces",
				"White-label reports",
				"Dedicated account manager",
			},
			CTAText: "Upgrade to Agency",
		},
	}
}

// PlanByName looks up a catalog entry.
func PlanByName(name PlanName) (Plan, bool) {
	for _, p := range PlanCatalog() {
		if p.PlanName == name {
			return p, true
		}
	}
	return Plan{}, false
}
