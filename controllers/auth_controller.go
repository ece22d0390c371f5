package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"leadforge/store"
	"leadforge/utils"
)

type AuthController struct {
	Store *store.Store
}

func NewAuthController(st *store.Store) *AuthController {
	return &AuthController{Store: st}
}

// Login accepts any non-empty credentials; no verification is performed.
// A successful submit moves the session from the Auth pseudo-state to the
// authenticated Dashboard.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	accessToken, refreshToken, err := utils.GenerateJWTTokens(input.Email)
	if err != nil {
		utils.ReportError("token_generation", err, map[string]interface{}{"email": input.Email})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	setSessionCookies(c, accessToken, refreshToken)

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"profile":       ac.Store.Settings().Profile,
		"redirect":      "/dashboard",
	})
}

func (ac *AuthController) RefreshToken(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil || input.RefreshToken == "" {
		input.RefreshToken = c.Cookies("refresh_token")
	}
	if input.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Refresh token is required",
		})
	}

	accessToken, refreshToken, err := utils.RefreshTokens(input.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired refresh token",
		})
	}

	setSessionCookies(c, accessToken, refreshToken)

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout clears the session cookies and returns the session to the
// landing page.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.ClearCookie("access_token")
	c.ClearCookie("refresh_token")
	return c.JSON(fiber.Map{
		"message":  "Logged out",
		"redirect": "/",
	})
}

func (ac *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"email":   c.Locals("email"),
		"profile": ac.Store.Settings().Profile,
		"plan":    ac.Store.Plan(),
	})
}

func setSessionCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Expires:  time.Now().Add(15 * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
