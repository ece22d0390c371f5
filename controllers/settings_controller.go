package controller

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"leadforge/config"
	"leadforge/models"
	"leadforge/store"
	"leadforge/utils"
)

type SettingsController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewSettingsController(st *store.Store, logger *log.Logger) *SettingsController {
	return &SettingsController{Store: st, Logger: logger}
}

var googleOAuthConfig *oauth2.Config

func init() {
	googleOAuthConfig = &oauth2.Config{
		ClientID:     config.AppConfig.Google.ClientID,
		ClientSecret: config.AppConfig.Google.ClientSecret,
		RedirectURL:  config.AppConfig.Google.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}
}

func (sc *SettingsController) GetSettings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"settings":    sc.Store.Settings(),
		"integration": sc.Store.Integration(),
	})
}

// UpdateSettings replaces the whole settings document. Validation failure
// leaves the stored settings untouched.
func (sc *SettingsController) UpdateSettings(c *fiber.Ctx) error {
	var input models.UserSettings
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

	sc.Store.SaveSettings(input)
	utils.LogEvent("settings_saved", map[string]interface{}{
		"profile": input.Profile.Email,
	})
	return c.JSON(fiber.Map{
		"message":  "Settings saved",
		"settings": sc.Store.Settings(),
	})
}

// RegenerateAPIKey mints a fresh key and discards the old one.
func (sc *SettingsController) RegenerateAPIKey(c *fiber.Ctx) error {
	key := sc.Store.RegenerateAPIKey()
	sc.Logger.Printf("API key regenerated")
	return c.JSON(fiber.Map{
		"apiKey": key,
	})
}

// ConnectIntegration starts the Google consent flow for linking a Gmail
// account. Without OAuth credentials configured the link is simulated
// using the sender address from settings.
func (sc *SettingsController) ConnectIntegration(c *fiber.Ctx) error {
	if config.AppConfig.Google.ClientID == "" {
		settings := sc.Store.Settings()
		sc.Store.SetIntegration(&models.Integration{
			Provider: "Gmail",
			Account:  settings.Profile.Email,
		})
		return c.JSON(fiber.Map{
			"message":     "Integration connected",
			"integration": sc.Store.Integration(),
		})
	}

	state := uuid.NewString()

	cookie := new(fiber.Cookie)
	cookie.Name = "oauth_state"
	cookie.Value = state
	cookie.Expires = time.Now().Add(10 * time.Minute)
	cookie.HTTPOnly = true
	cookie.Secure = true
	cookie.SameSite = "Lax"
	c.Cookie(cookie)

	url := googleOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

// IntegrationCallback finishes the consent flow and records the linked
// account.
func (sc *SettingsController) IntegrationCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	cookieState := c.Cookies("oauth_state")
	if state == "" || cookieState == "" || state != cookieState {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid state parameter",
		})
	}
	c.ClearCookie("oauth_state")

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Authorization code not provided",
		})
	}

	token, err := googleOAuthConfig.Exchange(context.Background(), code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to exchange token: " + err.Error(),
		})
	}

	client := googleOAuthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get user info: " + err.Error(),
		})
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Google API error: " + string(body),
		})
	}

	var googleUser struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to parse user info: " + err.Error(),
		})
	}
	if googleUser.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Google account email is required",
		})
	}

	sc.Store.SetIntegration(&models.Integration{
		Provider: "Gmail",
		Account:  googleUser.Email,
	})
	utils.LogEvent("integration_connected", map[string]interface{}{
		"provider": "Gmail",
	})
	return c.Redirect("/settings", fiber.StatusSeeOther)
}

func (sc *SettingsController) DisconnectIntegration(c *fiber.Ctx) error {
	sc.Store.SetIntegration(nil)
	return c.JSON(fiber.Map{
		"message": "Integration disconnected",
	})
}
