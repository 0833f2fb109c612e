package controllers

import (
	"context"

	"getmait/models"
	"getmait/pkg/cache"
	"getmait/pkg/session"
	"getmait/pkg/supabase"
	"getmait/pkg/tenant"
)

// Relay answers one user message with the assistant's reply text.
type Relay interface {
	Send(ctx context.Context, message string, store models.StoreSummary) (string, error)
}

// Deps carries everything the handlers need; main assembles it once from
// config and passes it down through route registration.
type Deps struct {
	Backend   *supabase.Client
	Relay     Relay
	Sessions  *session.Store
	Resolver  tenant.Resolver
	Snapshots *cache.StoreCache
}
