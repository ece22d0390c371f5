package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"leadforge/models"
	"leadforge/store"
	"leadforge/utils"
)

type AnalyticsController struct {
	Store     *store.Store
	Generator utils.ContentGenerator
	Logger    *log.Logger
}

func NewAnalyticsController(st *store.Store, generator utils.ContentGenerator, logger *log.Logger) *AnalyticsController {
	return &AnalyticsController{Store: st, Generator: generator, Logger: logger}
}

// Open, click and bounce rates are not tracked by the campaign model; the
// analytics screen shows fixed reference values for them alongside the
// real reply figures.
const (
	staticOpenRate   = 38.4
	staticClickRate  = 10.2
	staticBounceRate = 1.8
)

var monthlyPerformance = []models.MonthlyPerformance{
	{Name: "Jan", OpenRate: 22, ReplyRate: 4, ClickRate: 6},
	{Name: "Feb", OpenRate: 25, ReplyRate: 5, ClickRate: 8},
	{Name: "Mar", OpenRate: 31, ReplyRate: 6, ClickRate: 9},
	{Name: "Apr", OpenRate: 28, ReplyRate: 5.5, ClickRate: 8.5},
	{Name: "May", OpenRate: 35, ReplyRate: 7, ClickRate: 11},
	{Name: "Jun", OpenRate: 42, ReplyRate: 8.2, ClickRate: 12},
}

// GetAnalytics assembles the chart payloads from current campaign and lead
// state.
func (ac *AnalyticsController) GetAnalytics(c *fiber.Ctx) error {
	campaigns := ac.Store.Campaigns()
	leads := ac.Store.Leads("")

	var totalSent, totalReplies int
	performance := make([]models.CampaignPerformance, 0, len(campaigns))
	for _, campaign := range campaigns {
		totalSent += campaign.SentCount
		totalReplies += campaign.RepliesCount
		performance = append(performance, models.CampaignPerformance{
			Name:    campaign.Name,
			Sent:    campaign.SentCount,
			Opened:  int(float64(campaign.SentCount) * staticOpenRate / 100),
			Clicks:  int(float64(campaign.SentCount) * staticClickRate / 100),
			Replied: campaign.RepliesCount,
			Bounces: int(float64(campaign.SentCount) * staticBounceRate / 100),
		})
	}

	replyRate := 0.0
	if totalSent > 0 {
		replyRate = float64(totalReplies) / float64(totalSent) * 100
	}

	distribution := map[models.LeadStatus]int{}
	for _, lead := range leads {
		distribution[lead.Status]++
	}
	statuses := []models.LeadStatus{
		models.LeadStatusNew,
		models.LeadStatusContacted,
		models.LeadStatusReplied,
		models.LeadStatusInterested,
		models.LeadStatusNotInterested,
	}
	byStatus := make([]models.LeadStatusCount, 0, len(statuses))
	for _, status := range statuses {
		byStatus = append(byStatus, models.LeadStatusCount{Name: string(status), Value: distribution[status]})
	}

	return c.JSON(fiber.Map{
		"monthlyPerformance":     monthlyPerformance,
		"campaignPerformance":    performance,
		"leadStatusDistribution": byStatus,
		"overall": fiber.Map{
			"openRate":   staticOpenRate,
			"clickRate":  staticClickRate,
			"replyRate":  replyRate,
			"bounceRate": staticBounceRate,
		},
	})
}

// GetInsights asks the content generator for recommendations. The
// generator degrades to mock payloads itself; this endpoint never fails on
// a generation error.
func (ac *AnalyticsController) GetInsights(c *fiber.Ctx) error {
	insights, err := ac.Generator.GenerateInsights(c.Context(), ac.Store.Campaigns())
	if err != nil {
		// Contract says the generator falls back internally; keep a belt
		// here anyway and return an empty set rather than an error.
		ac.Logger.Printf("Insight generation failed: %v", err)
		insights = []models.AIInsight{}
	}
	return c.JSON(fiber.Map{
		"insights": insights,
	})
}

// GenerateStrategy synthesizes a new campaign strategy from performance
// history.
func (ac *AnalyticsController) GenerateStrategy(c *fiber.Ctx) error {
	strategy, err := ac.Generator.GenerateStrategy(c.Context(), ac.Store.Campaigns())
	if err != nil {
		ac.Logger.Printf("Strategy generation failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Strategy generation is unavailable",
		})
	}
	return c.JSON(fiber.Map{
		"strategy": strategy,
	})
}

// UseStrategy stages a strategy so the campaigns screen pre-fills its
// creation form with it.
func (ac *AnalyticsController) UseStrategy(c *fiber.Ctx) error {
	var strategy models.StrategyDetails
	if err := c.BodyParser(&strategy); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if strategy.Niche == "" || strategy.Problem == "" || strategy.Offer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Strategy requires niche, problem and offer",
		})
	}

	ac.Store.SetPendingStrategy(strategy)
	return c.JSON(fiber.Map{
		"message":  "Strategy staged for campaign creation",
		"redirect": "/campaigns",
	})
}
