package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"leadforge/store"
	"leadforge/utils"
)

type InboxController struct {
	Store  *store.Store
	Mailer utils.Mailer
	Logger *log.Logger
}

func NewInboxController(st *store.Store, mailer utils.Mailer, logger *log.Logger) *InboxController {
	return &InboxController{Store: st, Mailer: mailer, Logger: logger}
}

type threadSummary struct {
	LeadID      string `json:"leadId"`
	LeadName    string `json:"leadName"`
	Company     string `json:"company"`
	LeadStatus  string `json:"leadStatus"`
	Title       string `json:"title"`
	LastMessage string `json:"lastMessage"`
	LastTime    string `json:"lastTime"`
	Messages    int    `json:"messages"`
}

// GetConversations lists every thread joined with its lead.
func (ic *InboxController) GetConversations(c *fiber.Ctx) error {
	conversations := ic.Store.Conversations()

	threads := make([]threadSummary, 0, len(conversations))
	for _, conv := range conversations {
		lead, ok := ic.Store.LeadByID(conv.LeadID)
		if !ok || len(conv.Messages) == 0 {
			continue
		}
		last := conv.Messages[len(conv.Messages)-1]
		threads = append(threads, threadSummary{
			LeadID:      conv.LeadID,
			LeadName:    lead.Name,
			Company:     lead.Company,
			LeadStatus:  string(lead.Status),
			Title:       store.ThreadTitle(conv, lead.Name),
			LastMessage: last.Body,
			LastTime:    last.Timestamp,
			Messages:    len(conv.Messages),
		})
	}

	return c.JSON(fiber.Map{
		"threads": threads,
		"total":   len(threads),
	})
}

func (ic *InboxController) GetConversation(c *fiber.Ctx) error {
	leadID := c.Params("leadId")
	conv, ok := ic.Store.ConversationForLead(leadID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Conversation not found",
		})
	}
	lead, _ := ic.Store.LeadByID(leadID)
	return c.JSON(fiber.Map{
		"conversation": conv,
		"lead":         lead,
	})
}

type replyInput struct {
	Body string `json:"body" validate:"required"`
}

// SendReply appends a manual user message to the lead's thread, creating
// the thread if needed, and stamps the lead's contact date. Delivery goes
// through the mailer, which is simulated unless SMTP is configured.
func (ic *InboxController) SendReply(c *fiber.Ctx) error {
	var input replyInput
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

	leadID := c.Params("leadId")
	lead, ok := ic.Store.LeadByID(leadID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}

	msg, ok := ic.Store.SendReply(leadID, input.Body)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}

	conv, _ := ic.Store.ConversationForLead(leadID)
	subject := "Re: " + store.ThreadTitle(conv, lead.Name)
	if err := ic.Mailer.Send(lead.Email, subject, input.Body); err != nil {
		// The thread keeps the message; delivery failure is reported but
		// does not roll back conversation state.
		ic.Logger.Printf("Delivery failed for lead %s: %v", leadID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": msg,
	})
}
