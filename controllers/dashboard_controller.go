package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"leadforge/models"
	"leadforge/store"
)

type DashboardController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewDashboardController(st *store.Store, logger *log.Logger) *DashboardController {
	return &DashboardController{Store: st, Logger: logger}
}

// GetDashboardStats aggregates the headline numbers across all campaigns.
func (dc *DashboardController) GetDashboardStats(c *fiber.Ctx) error {
	campaigns := dc.Store.Campaigns()

	var active, totalLeads, totalSent, totalReplies int
	for _, campaign := range campaigns {
		switch campaign.Status {
		case models.CampaignStatusGenerating, models.CampaignStatusSending, models.CampaignStatusActive:
			active++
		}
		totalLeads += campaign.LeadsCount
		totalSent += campaign.SentCount
		totalReplies += campaign.RepliesCount
	}

	replyRate := 0.0
	if totalSent > 0 {
		replyRate = float64(totalReplies) / float64(totalSent) * 100
	}

	return c.JSON(fiber.Map{
		"activeCampaigns": active,
		"totalCampaigns":  len(campaigns),
		"totalLeads":      totalLeads,
		"emailsSent":      totalSent,
		"replies":         totalReplies,
		"replyRate":       replyRate,
		"plan":            dc.Store.Plan(),
	})
}

// GetRecentCampaigns returns the newest campaigns; the collection is kept
// most-recent-first.
func (dc *DashboardController) GetRecentCampaigns(c *fiber.Ctx) error {
	campaigns := dc.Store.Campaigns()
	limit := c.QueryInt("limit", 5)
	if limit > 0 && limit < len(campaigns) {
		campaigns = campaigns[:limit]
	}
	return c.JSON(fiber.Map{
		"campaigns": campaigns,
	})
}
