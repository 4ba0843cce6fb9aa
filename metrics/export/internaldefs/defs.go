package internaldefs

import (
	newsdeck "github.com/MrEthical07/newsdeck"
)

// CounterDef binds one engine counter to its exported name and help string.
type CounterDef struct {
	ID   newsdeck.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported engine counter, in stable order.
var CounterDefs = []CounterDef{
	{ID: newsdeck.MetricRegisterSuccess, Name: "newsdeck_register_success_total", Help: "Completed registrations."},
	{ID: newsdeck.MetricRegisterDuplicate, Name: "newsdeck_register_duplicate_total", Help: "Registrations rejected for an existing email."},
	{ID: newsdeck.MetricRegisterRateLimited, Name: "newsdeck_register_rate_limited_total", Help: "Throttled registrations."},
	{ID: newsdeck.MetricLoginSuccess, Name: "newsdeck_login_success_total", Help: "Successful logins."},
	{ID: newsdeck.MetricLoginFailure, Name: "newsdeck_login_failure_total", Help: "Logins rejected for unknown email or bad password."},
	{ID: newsdeck.MetricLoginRateLimited, Name: "newsdeck_login_rate_limited_total", Help: "Throttled logins."},
	{ID: newsdeck.MetricRefreshSuccess, Name: "newsdeck_refresh_success_total", Help: "Access tokens re-issued from refresh tokens."},
	{ID: newsdeck.MetricRefreshFailure, Name: "newsdeck_refresh_failure_total", Help: "Rejected refresh tokens."},
	{ID: newsdeck.MetricAccountUpdated, Name: "newsdeck_account_updated_total", Help: "Admin account updates."},
	{ID: newsdeck.MetricCollectionAdded, Name: "newsdeck_collection_added_total", Help: "Created collections."},
	{ID: newsdeck.MetricCollectionPatched, Name: "newsdeck_collection_patched_total", Help: "Collection query updates."},
	{ID: newsdeck.MetricCollectionDeleted, Name: "newsdeck_collection_deleted_total", Help: "Deleted collections."},
	{ID: newsdeck.MetricOwnerMismatch, Name: "newsdeck_owner_mismatch_total", Help: "Collection mutations rejected by the owner check."},
}
