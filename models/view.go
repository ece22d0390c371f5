package models

import "strings"

// View identifies one of the named screens of the dashboard.
type View string

const (
	ViewDashboard     View = "Dashboard"
	ViewCampaigns     View = "Campaigns"
	ViewLeads         View = "Leads"
	ViewInbox         View = "Inbox"
	ViewAnalytics     View = "Analytics"
	ViewBilling       View = "Billing"
	ViewNotifications View = "Notifications"
	ViewSettings      View = "Settings"

	// Pseudo-states preceding authentication.
	ViewLanding View = "Landing"
	ViewAuth    View = "Auth"
)

var validViews = map[View]bool{
	ViewDashboard:     true,
	ViewCampaigns:     true,
	ViewLeads:         true,
	ViewInbox:         true,
	ViewAnalytics:     true,
	ViewBilling:       true,
	ViewNotifications: true,
	ViewSettings:      true,
}

// IsValidView reports membership in the fixed named-view set. Pseudo-states
// are not named views.
func IsValidView(v View) bool {
	return validViews[v]
}

// PathFromFragment normalizes a URL fragment to a path: "#/dashboard" ->
// "/dashboard". An empty fragment, "#", or "#/" is the root.
func PathFromFragment(fragment string) string {
	if fragment == "" || fragment == "#" || fragment == "#/" {
		return "/"
	}
	if strings.HasPrefix(fragment, "#") {
		return fragment[1:]
	}
	return fragment
}

// ResolveView maps a URL fragment to a view. The root is the Landing
// pseudo-state, "/auth" is the Auth pseudo-state, and any unrecognized
// name falls back to Dashboard.
func ResolveView(fragment string) View {
	path := PathFromFragment(fragment)
	if path == "/" {
		return ViewLanding
	}

	name := strings.TrimPrefix(path, "/")
	if name == "" {
		return ViewDashboard
	}
	if strings.EqualFold(name, "auth") {
		return ViewAuth
	}

	candidate := View(strings.ToUpper(name[:1]) + name[1:])
	if IsValidView(candidate) {
		return candidate
	}
	return ViewDashboard
}
