package controller

import (
	"bytes"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"leadforge/models"
	"leadforge/store"
	"leadforge/utils"
)

type LeadController struct {
	Store     *store.Store
	Generator utils.ContentGenerator
	Logger    *log.Logger
}

func NewLeadController(st *store.Store, generator utils.ContentGenerator, logger *log.Logger) *LeadController {
	return &LeadController{Store: st, Generator: generator, Logger: logger}
}

func (lc *LeadController) GetLeads(c *fiber.Ctx) error {
	campaignID := c.Query("campaign_id")
	status := c.Query("status")

	leads := lc.Store.Leads(campaignID)
	if status != "" {
		filtered := leads[:0]
		for _, l := range leads {
			if string(l.Status) == status {
				filtered = append(filtered, l)
			}
		}
		leads = filtered
	}

	return c.JSON(fiber.Map{
		"leads": leads,
		"total": len(leads),
	})
}

func (lc *LeadController) GetLead(c *fiber.Ctx) error {
	lead, ok := lc.Store.LeadByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}
	return c.JSON(fiber.Map{"lead": lead})
}

// ToggleTag flips a temperature label on a lead. Toggling twice restores
// the original tag set.
func (lc *LeadController) ToggleTag(c *fiber.Ctx) error {
	var input struct {
		Tag models.LeadTag `json:"tag" validate:"required,oneof=Hot Warm Cold"`
	}
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

	lead, ok := lc.Store.ToggleLeadTag(c.Params("id"), input.Tag)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}
	return c.JSON(fiber.Map{"lead": lead})
}

// ExportLeads streams the current lead collection as a spreadsheet.
func (lc *LeadController) ExportLeads(c *fiber.Ctx) error {
	leads := lc.Store.Leads(c.Query("campaign_id"))

	workbook, err := utils.LeadsWorkbook(leads)
	if err != nil {
		utils.ReportError("lead_export", err, map[string]interface{}{"count": len(leads)})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build export",
		})
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to write export",
		})
	}

	filename := "leads-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}

// GenerateDraft produces an email for a lead through the content
// generator: a cold email for New leads, a follow-up otherwise. Generator
// failure substitutes a fixed message and changes no state.
func (lc *LeadController) GenerateDraft(c *fiber.Ctx) error {
	lead, ok := lc.Store.LeadByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}
	campaign, ok := lc.Store.CampaignByID(lead.CampaignID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Campaign not found",
		})
	}

	settings := lc.Store.Settings()
	followUp := lead.Status != models.LeadStatusNew

	var body string
	var err error
	if followUp {
		body, err = lc.Generator.GenerateFollowUpEmail(c.Context(),
			campaign.Niche, campaign.Problem, campaign.Offer, settings.AI.FollowUpStyle)
	} else {
		body, err = lc.Generator.GenerateColdEmail(c.Context(),
			campaign.Niche, campaign.Location, campaign.Problem, campaign.Offer, settings.AI.Tone)
	}
	if err != nil {
		body = utils.GenerationFailedMessage
	}

	return c.JSON(fiber.Map{
		"draft":    utils.PersonalizeEmail(body, lead.Name, lead.Company),
		"followUp": followUp,
	})
}

// ApplyDraft records that the generated draft was sent: the lead becomes
// Contacted, the contact date is stamped, and the follow-up counter
// advances only when the draft was a follow-up.
func (lc *LeadController) ApplyDraft(c *fiber.Ctx) error {
	lead, ok := lc.Store.ApplyDraft(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}

	lc.Logger.Printf("Applied draft for lead %s (follow-ups: %d)", lead.ID, lead.FollowUpCount)
	return c.JSON(fiber.Map{
		"message": "Draft applied",
		"lead":    lead,
	})
}
