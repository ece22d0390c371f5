package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadforge/models"
)

func validCheckout() CheckoutInput {
	return CheckoutInput{
		Plan:       "Agency",
		FullName:   "Alex Starr",
		Email:      "alex@example.com",
		CardNumber: "4242 4242 4242 4242",
		CardName:   "Alex Starr",
		CardExpiry: "12/39",
		CardCvc:    "123",
	}
}

func TestValidateCheckoutAcceptsWellFormedInput(t *testing.T) {
	assert.Nil(t, ValidateCheckout(validCheckout()))
}

func TestValidateCheckoutRejectsBadCardNumber(t *testing.T) {
	input := validCheckout()
	input.CardNumber = "1234"
	errs := ValidateCheckout(input)
	assert.Contains(t, errs, "cardNumber")

	input.CardNumber = "4242-4242-4242-4242"
	errs = ValidateCheckout(input)
	assert.Contains(t, errs, "cardNumber")
}

func TestValidateCheckoutRejectsBadExpiry(t *testing.T) {
	input := validCheckout()
	input.CardExpiry = "13/30"
	errs := ValidateCheckout(input)
	assert.Equal(t, "Expiry must be in MM/YY format.", errs["cardExpiry"])

	input.CardExpiry = "2030-12"
	errs = ValidateCheckout(input)
	assert.Equal(t, "Expiry must be in MM/YY format.", errs["cardExpiry"])

	input.CardExpiry = "01/20"
	errs = ValidateCheckout(input)
	assert.Equal(t, "Card has expired.", errs["cardExpiry"])
}

func TestValidateCheckoutRequiresIdentityFields(t *testing.T) {
	input := validCheckout()
	input.FullName = ""
	input.Email = "not-an-email"
	errs := ValidateCheckout(input)
	assert.Contains(t, errs, "form")
}

func TestPlanAmountCents(t *testing.T) {
	plan, ok := models.PlanByName(models.PlanPro)
	require.True(t, ok)

	amount, err := planAmountCents(plan)
	assert.NoError(t, err)
	assert.Equal(t, int64(6900), amount)
}
