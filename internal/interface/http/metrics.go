package handlers

import "expvar"

// counters is published on /debug/vars under "fitbalance".
var counters = expvar.NewMap("fitbalance")

const (
	metricLogins         = "logins"
	metricLoginFailures  = "login_failures"
	metricRegistrations  = "registrations"
	metricMenusGenerated = "menus_generated"
	metricMenuShortfalls = "menu_shortfalls"
	metricShoppingLists  = "shopping_lists"
	metricRecipesCreated = "recipes_created"
	metricImagesUploaded = "images_uploaded"
)
