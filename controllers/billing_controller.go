package controller

import (
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"leadforge/config"
	"leadforge/models"
	"leadforge/store"
	"leadforge/utils"
)

func InitStripe() {
	stripe.Key = config.AppConfig.StripeSecretKey
}

type BillingController struct {
	Store  *store.Store
	Logger *log.Logger
}

func NewBillingController(st *store.Store, logger *log.Logger) *BillingController {
	return &BillingController{Store: st, Logger: logger}
}

func (bc *BillingController) GetPlans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"plans":       models.PlanCatalog(),
		"currentPlan": bc.Store.Plan(),
	})
}

// CheckoutInput mirrors the two-step checkout form. Card details are only
// shape-checked; no charge happens in simulated mode.
type CheckoutInput struct {
	Plan       models.PlanName `json:"plan" validate:"required,oneof=Free Starter Pro Agency"`
	FullName   string          `json:"fullName" validate:"required"`
	Email      string          `json:"email" validate:"required,email"`
	CardNumber string          `json:"cardNumber" validate:"required"`
	CardName   string          `json:"cardName" validate:"required"`
	CardExpiry string          `json:"cardExpiry" validate:"required"`
	CardCvc    string          `json:"cardCvc" validate:"required,numeric,min=3,max=4"`
}

var cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)

// ValidateCheckout applies the per-field rules of the checkout form.
// Returned errors are keyed by field for inline display.
func ValidateCheckout(input CheckoutInput) map[string]string {
	errors := make(map[string]string)

	if err := utils.ValidateStruct(input); err != nil {
		errors["form"] = err.Error()
	}

	digits := strings.ReplaceAll(input.CardNumber, " ", "")
	if input.CardNumber != "" && !cardNumberPattern.MatchString(digits) {
		errors["cardNumber"] = "Invalid Card Number format."
	}

	if input.CardExpiry != "" {
		if ok, expired := parseExpiry(input.CardExpiry); !ok {
			errors["cardExpiry"] = "Expiry must be in MM/YY format."
		} else if expired {
			errors["cardExpiry"] = "Card has expired."
		}
	}

	if len(errors) == 0 {
		return nil
	}
	return errors
}

// parseExpiry reports whether the value is a well-formed MM/YY date and
// whether that date is in the past. The card stays valid through the last
// day of its expiry month.
func parseExpiry(value string) (ok bool, expired bool) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false, false
	}
	month, err1 := strconv.Atoi(parts[0])
	year, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		return false, false
	}

	endOfMonth := time.Date(2000+year, time.Month(month)+1, 0, 23, 59, 59, 0, time.UTC)
	return true, endOfMonth.Before(time.Now().UTC())
}

// Checkout upgrades the plan. With a Stripe key configured it creates a
// real payment intent; otherwise the payment is simulated and the plan
// flips immediately.
func (bc *BillingController) Checkout(c *fiber.Ctx) error {
	var input CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if fieldErrors := ValidateCheckout(input); fieldErrors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fieldErrors,
		})
	}

	plan, ok := models.PlanByName(input.Plan)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown plan",
		})
	}

	if config.AppConfig.StripeSecretKey != "" {
		return bc.checkoutWithStripe(c, plan)
	}

	bc.Store.SetPlan(plan.PlanName)
	utils.LogEvent("plan_upgraded", map[string]interface{}{
		"plan": string(plan.PlanName),
		"mode": "simulated",
	})
	return c.JSON(fiber.Map{
		"message":     "Payment successful",
		"currentPlan": plan.PlanName,
		"redirect":    "/billing",
	})
}

func (bc *BillingController) checkoutWithStripe(c *fiber.Ctx, plan models.Plan) error {
	amount, err := planAmountCents(plan)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Plan has no billable amount",
		})
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("plan", string(plan.PlanName))

	pi, err := paymentintent.New(params)
	if err != nil {
		utils.ReportError("stripe_intent", err, map[string]interface{}{"plan": string(plan.PlanName)})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to create payment intent",
		})
	}

	bc.Store.SetPlan(plan.PlanName)
	return c.JSON(fiber.Map{
		"message":       "Payment intent created",
		"currentPlan":   plan.PlanName,
		"client_secret": pi.ClientSecret,
	})
}

// planAmountCents converts the catalog price label to cents.
func planAmountCents(plan models.Plan) (int64, error) {
	dollars, err := strconv.Atoi(strings.TrimPrefix(plan.Price, "$"))
	if err != nil {
		return 0, err
	}
	return int64(dollars) * 100, nil
}
