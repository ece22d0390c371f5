package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveView(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     View
	}{
		{"empty fragment is landing", "", ViewLanding},
		{"bare hash is landing", "#", ViewLanding},
		{"hash slash is landing", "#/", ViewLanding},
		{"auth path", "#/auth", ViewAuth},
		{"auth is case insensitive", "#/Auth", ViewAuth},
		{"dashboard", "#/dashboard", ViewDashboard},
		{"campaigns", "#/campaigns", ViewCampaigns},
		{"leads", "#/leads", ViewLeads},
		{"inbox", "#/inbox", ViewInbox},
		{"analytics", "#/analytics", ViewAnalytics},
		{"billing", "#/billing", ViewBilling},
		{"notifications", "#/notifications", ViewNotifications},
		{"settings", "#/settings", ViewSettings},
		{"unknown name falls back to dashboard", "#/reports", ViewDashboard},
		{"garbage falls back to dashboard", "#/xyz123", ViewDashboard},
		{"path without hash also resolves", "/leads", ViewLeads},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveView(tt.fragment))
		})
	}
}

func TestPathFromFragment(t *testing.T) {
	assert.Equal(t, "/", PathFromFragment(""))
	assert.Equal(t, "/", PathFromFragment("#"))
	assert.Equal(t, "/", PathFromFragment("#/"))
	assert.Equal(t, "/dashboard", PathFromFragment("#/dashboard"))
	assert.Equal(t, "/leads", PathFromFragment("/leads"))
}

func TestIsValidViewExcludesPseudoStates(t *testing.T) {
	assert.True(t, IsValidView(ViewDashboard))
	assert.True(t, IsValidView(ViewSettings))
	assert.False(t, IsValidView(ViewLanding))
	assert.False(t, IsValidView(ViewAuth))
	assert.False(t, IsValidView(View("Reports")))
}
