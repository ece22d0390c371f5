package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"leadforge/models"
	"leadforge/store"
	"leadforge/utils"
)

type CampaignController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewCampaignController(st *store.Store, logger *log.Logger) *CampaignController {
	return &CampaignController{Store: st, Logger: logger}
}

type createCampaignInput struct {
	Niche    string `json:"niche" validate:"required"`
	Location string `json:"location" validate:"required"`
	Problem  string `json:"problem" validate:"required"`
	Offer    string `json:"offer" validate:"required"`
}

// CreateCampaign starts a new outreach effort. The campaign begins in the
// Generating status with zeroed counters; the simulation takes it from
// there.
func (cc *CampaignController) CreateCampaign(c *fiber.Ctx) error {
	var input createCampaignInput
	if err := c.BodyParser(&input); err != nil {
		cc.Logger.Printf("Error parsing request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	campaign := cc.Store.CreateCampaign(input.Niche, input.Location, input.Problem, input.Offer)
	cc.Logger.Printf("Created campaign %s (%s)", campaign.ID, campaign.Name)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Campaign created successfully",
		"campaign": campaign,
	})
}

func (cc *CampaignController) GetCampaigns(c *fiber.Ctx) error {
	campaigns := cc.Store.Campaigns()

	// A strategy staged from analytics pre-fills the next creation form.
	response := fiber.Map{"campaigns": campaigns}
	if strategy, ok := cc.Store.TakePendingStrategy(); ok {
		response["initialData"] = strategy
	}
	return c.JSON(response)
}

func (cc *CampaignController) GetCampaign(c *fiber.Ctx) error {
	campaign, ok := cc.Store.CampaignByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}
	return c.JSON(fiber.Map{
		"campaign": campaign,
		"leads":    cc.Store.Leads(campaign.ID),
	})
}

// UpdateCampaign replaces the stored record wholesale; the reply rate is
// recomputed server-side regardless of what the client sent.
func (cc *CampaignController) UpdateCampaign(c *fiber.Ctx) error {
	var input models.Campaign
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	input.ID = c.Params("id")

	updated, ok := cc.Store.UpdateCampaign(input)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}
	return c.JSON(fiber.Map{
		"message":  "Campaign updated successfully",
		"campaign": updated,
	})
}

// PauseCampaign suspends sending. Only Sending campaigns can pause.
func (cc *CampaignController) PauseCampaign(c *fiber.Ctx) error {
	return cc.transition(c, models.CampaignStatusSending, models.CampaignStatusPaused, "Campaign paused")
}

// ResumeCampaign returns a paused campaign to Sending.
func (cc *CampaignController) ResumeCampaign(c *fiber.Ctx) error {
	return cc.transition(c, models.CampaignStatusPaused, models.CampaignStatusSending, "Campaign resumed")
}

func (cc *CampaignController) transition(c *fiber.Ctx, from, to models.CampaignStatus, message string) error {
	campaign, ok := cc.Store.CampaignByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}
	if campaign.Status != from {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Campaign is not in the " + string(from) + " status",
		})
	}

	campaign.Status = to
	updated, _ := cc.Store.UpdateCampaign(campaign)
	return c.JSON(fiber.Map{
		"message":  message,
		"campaign": updated,
	})
}

type scheduleInput struct {
	StartDate    string `json:"startDate" validate:"required"`
	WindowStart  string `json:"windowStart" validate:"required"`
	WindowEnd    string `json:"windowEnd" validate:"required"`
	EmailsPerDay int    `json:"emailsPerDay" validate:"min=1"`
}

// ScheduleCampaign attaches a sending schedule and forces the campaign into
// Sending. The schedule is display-only; the simulation does not enforce it.
func (cc *CampaignController) ScheduleCampaign(c *fiber.Ctx) error {
	var input scheduleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	campaign, ok := cc.Store.CampaignByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}

	campaign.Schedule = &models.CampaignSchedule{
		StartDate:    input.StartDate,
		TimeWindow:   models.TimeWindow{Start: input.WindowStart, End: input.WindowEnd},
		EmailsPerDay: input.EmailsPerDay,
	}
	campaign.Status = models.CampaignStatusSending

	updated, _ := cc.Store.UpdateCampaign(campaign)
	return c.JSON(fiber.Map{
		"message":  "Campaign scheduled",
		"campaign": updated,
	})
}

// SelectCampaign opens the detail view; navigation renders the campaign
// detail instead of the active named view until the selection clears.
func (cc *CampaignController) SelectCampaign(c *fiber.Ctx) error {
	if !cc.Store.SelectCampaign(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}
	campaign, _ := cc.Store.SelectedCampaign()
	return c.JSON(fiber.Map{
		"campaign": campaign,
		"leads":    cc.Store.Leads(campaign.ID),
	})
}

// ClearSelection is the detail view's back action.
func (cc *CampaignController) ClearSelection(c *fiber.Ctx) error {
	cc.Store.ClearSelection()
	return c.JSON(fiber.Map{
		"message": "Selection cleared",
	})
}
