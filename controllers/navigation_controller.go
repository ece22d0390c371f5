package controller

import (
	"github.com/gofiber/fiber/v2"

	"leadforge/models"
	"leadforge/store"
)

type NavigationController struct {
	Store *store.Store
}

func NewNavigationController(st *store.Store) *NavigationController {
	return &NavigationController{Store: st}
}

// ResolveView maps a URL fragment to the view the client should render.
// While a campaign is selected for detail, the named view is suspended and
// the campaign detail is rendered instead, until the selection is cleared
// or the route leaves the campaign context.
func (nc *NavigationController) ResolveView(c *fiber.Ctx) error {
	fragment := c.Query("fragment")
	view := models.ResolveView(fragment)

	// Leaving the authenticated area always clears the detail selection,
	// as does navigating to another named view.
	if view != models.ViewCampaigns {
		nc.Store.ClearSelection()
	}

	response := fiber.Map{
		"view":    view,
		"landing": view == models.ViewLanding,
		"auth":    view == models.ViewAuth,
	}
	if selected, ok := nc.Store.SelectedCampaign(); ok && view == models.ViewCampaigns {
		response["selectedCampaignId"] = selected.ID
		response["title"] = "Campaign: " + selected.Name
	} else {
		response["title"] = string(view)
	}
	return c.JSON(response)
}
