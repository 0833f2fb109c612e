package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"getmait/pkg/cache"
	"getmait/pkg/supabase"
	"getmait/pkg/view"
)

// User-facing load errors, verbatim platform copy. The page's only recovery
// path is a full reload, so each of these renders as a full-page error state.
const (
	MsgStoreLookupFailed = "Kunne ikke finde pizzaria. Kontakt support@getmait.dk"
	MsgStoreNotFound     = "Pizzaria ikke fundet."
	MsgMenuFailed        = "Kunne ikke hente menukort."
)

// Storefront serves the page data for the tenant resolved from the request
// host: branding plus the menu view for the requested category/expansion.
// The store fetch strictly precedes the menu fetch (the latter needs the id).
func Storefront(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := d.Resolver.Resolve(c.Request.Host, c.Request.URL.Query())

		snap, ok := d.Snapshots.Get(slug)
		if !ok {
			store, err := d.Backend.GetStore(c.Request.Context(), slug)
			if errors.Is(err, supabase.ErrStoreNotFound) {
				log.Printf("[storefront] no store for slug %s", slug)
				c.JSON(http.StatusNotFound, gin.H{"msg": MsgStoreNotFound})
				return
			}
			if err != nil {
				log.Printf("[storefront] store error for slug %s: %v", slug, err)
				c.JSON(http.StatusBadGateway, gin.H{"msg": MsgStoreLookupFailed})
				return
			}

			menu, err := d.Backend.GetMenu(c.Request.Context(), store.ID)
			if err != nil {
				log.Printf("[storefront] menu error for store %s: %v", store.ID, err)
				c.JSON(http.StatusBadGateway, gin.H{"msg": MsgMenuFailed})
				return
			}

			snap = cache.Snapshot{Store: store, Menu: menu}
			d.Snapshots.Put(slug, snap)
		}

		mv := view.NewMenuView(snap.Menu)
		mv.SelectCategory(c.Query("kategori"))
		if c.Query("udvidet") == "1" {
			mv.SetExpanded(true)
		}

		visible := mv.Visible()
		items := make([]gin.H, 0, len(visible))
		for _, item := range visible {
			items = append(items, gin.H{
				"kategori":    item.Category,
				"navn":        item.Name,
				"beskrivelse": item.Description,
				"pris":        item.Price,
				"pris_text":   view.FormatPrice(item.Price),
				"is_popular":  item.IsPopular,
			})
		}

		menuBody := gin.H{
			"categories":      mv.Categories(),
			"active_category": mv.ActiveCategory(),
			"items":           items,
			"total":           len(mv.Filtered()),
			"has_more":        mv.HasMore(),
			"expanded":        mv.Expanded(),
		}
		if len(visible) == 0 {
			menuBody["empty_message"] = view.EmptyMessage
		}

		c.JSON(http.StatusOK, gin.H{
			"slug":  slug,
			"store": view.BrandingFor(snap.Store),
			"menu":  menuBody,
		})
	}
}
