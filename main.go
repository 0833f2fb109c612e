package main

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"getmait/controllers"
	"getmait/middleware"
	"getmait/pkg/cache"
	"getmait/pkg/config"
	"getmait/pkg/services"
	"getmait/pkg/session"
	"getmait/pkg/supabase"
	"getmait/pkg/tenant"
	"getmait/routes"
)

func main() {
	// config loads in pkg/config init()

	middleware.SetRateLimitConfig(
		time.Duration(config.RateLimitWindowSeconds)*time.Second,
		config.RateLimitCapacity,
	)

	deps := controllers.Deps{
		Backend:  supabase.New(config.SupabaseURL, config.SupabaseAnonKey),
		Sessions: session.NewStore(config.SessionSecret, time.Duration(config.SessionTTLMinutes)*time.Minute),
		Resolver: tenant.Resolver{
			RootDomain:    config.RootDomain,
			PreviewDomain: config.PreviewDomain,
			DefaultSlug:   config.DefaultSlug,
		},
		Snapshots: cache.New(time.Duration(config.StoreCacheTTLSeconds)*time.Second, config.StoreCacheMaxItems),
	}

	if config.ChatWebhookURL == "" && config.IsStaging {
		log.Printf("[main] no chat webhook configured, using local reply")
		deps.Relay = services.LocalReply{}
	} else {
		deps.Relay = services.NewWebhookService(config.ChatWebhookURL)
	}

	r := gin.Default()

	// Storefront pages live on the tenant domains; the API allows those plus
	// local development hosts.
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return strings.Contains(origin, config.RootDomain) ||
				strings.Contains(origin, config.PreviewDomain) ||
				strings.Contains(origin, "localhost") ||
				strings.Contains(origin, "127.0.0.1")
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, deps)
	r.Run(":" + config.Port)
}
