package controller

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"leadforge/models"
	"leadforge/store"
)

type NotificationController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewNotificationController(st *store.Store, logger *log.Logger) *NotificationController {
	return &NotificationController{Store: st, Logger: logger}
}

// GetNotifications derives the activity feed from current state: replies,
// finished campaigns and generated lead batches. Nothing is persisted, so
// the feed rebuilds on every request.
func (nc *NotificationController) GetNotifications(c *fiber.Ctx) error {
	campaigns := nc.Store.Campaigns()

	notifications := make([]models.Notification, 0, len(campaigns)*2)
	for _, campaign := range campaigns {
		for _, lead := range nc.Store.Leads(campaign.ID) {
			if lead.Status == models.LeadStatusReplied || lead.Status == models.LeadStatusInterested {
				notifications = append(notifications, models.Notification{
					Kind: models.NotificationReply,
					Text: fmt.Sprintf("%q replied to your email in %q campaign.", lead.Name, campaign.Name),
					Time: lead.LastContacted,
				})
			}
		}

		switch campaign.Status {
		case models.CampaignStatusCompleted:
			notifications = append(notifications, models.Notification{
				Kind: models.NotificationCampaign,
				Text: fmt.Sprintf("Campaign %q has finished sending.", campaign.Name),
				Time: campaign.CreatedAt,
			})
		case models.CampaignStatusSending, models.CampaignStatusActive:
			notifications = append(notifications, models.Notification{
				Kind: models.NotificationCampaign,
				Text: fmt.Sprintf("Campaign %q is now active.", campaign.Name),
				Time: campaign.CreatedAt,
			})
		}

		if campaign.LeadsCount > 0 {
			notifications = append(notifications, models.Notification{
				Kind: models.NotificationLead,
				Text: fmt.Sprintf("%d new leads generated for %q.", campaign.LeadsCount, campaign.Name),
				Time: campaign.CreatedAt,
			})
		}
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"total":         len(notifications),
	})
}
