package view

import (
	"strconv"

	"getmait/models"
)

// CategoryAll is the implicit "show everything" chip.
const CategoryAll = "all"

// CollapsedCount is how many items a category shows before expansion.
const CollapsedCount = 4

// EmptyMessage is shown instead of an empty grid.
const EmptyMessage = "Ingen menupunkter tilgængelige i denne kategori."

// MenuView holds the storefront's menu presentation state: active category
// filter and whether the list is expanded past the first CollapsedCount items.
// It never re-sorts; the backend delivers category-then-price order.
type MenuView struct {
	menu     []models.MenuItem
	active   string
	expanded bool
}

func NewMenuView(menu []models.MenuItem) *MenuView {
	return &MenuView{menu: menu, active: CategoryAll}
}

// SelectCategory narrows the view to one category (or CategoryAll) and
// collapses the list again. Unknown categories simply filter to nothing.
func (v *MenuView) SelectCategory(category string) {
	if category == "" {
		category = CategoryAll
	}
	if category != v.active {
		v.expanded = false
	}
	v.active = category
}

func (v *MenuView) ToggleExpanded() { v.expanded = !v.expanded }

func (v *MenuView) SetExpanded(expanded bool) { v.expanded = expanded }

func (v *MenuView) ActiveCategory() string { return v.active }

func (v *MenuView) Expanded() bool { return v.expanded }

// Categories lists the distinct category labels in first-seen order.
func (v *MenuView) Categories() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, item := range v.menu {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

// Filtered returns all items matching the active category, in backend order.
func (v *MenuView) Filtered() []models.MenuItem {
	if v.active == CategoryAll {
		return v.menu
	}
	out := make([]models.MenuItem, 0)
	for _, item := range v.menu {
		if item.Category == v.active {
			out = append(out, item)
		}
	}
	return out
}

// Visible returns the items to render: the filtered list, truncated to
// CollapsedCount unless expanded.
func (v *MenuView) Visible() []models.MenuItem {
	filtered := v.Filtered()
	if v.expanded || len(filtered) <= CollapsedCount {
		return filtered
	}
	return filtered[:CollapsedCount]
}

// HasMore reports whether the filtered list holds more than fits collapsed.
func (v *MenuView) HasMore() bool {
	return len(v.Filtered()) > CollapsedCount
}

// FormatPrice renders a price with the fixed currency suffix ("89 kr.").
// Whole-number prices print without decimals.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64) + " kr."
}
