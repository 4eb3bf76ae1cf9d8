package client

import (
	"context"
	"sort"

	"github.com/websopen/web-valencio/internal/model"
)

// Backend is the remote half of the optimistic-edit cycle. *Client
// satisfies it; tests supply an in-memory fake.
type Backend interface {
	LoadStoreData(ctx context.Context) *model.StoreData
	SaveStoreData(ctx context.Context, data *model.StoreData) error
}

// PendingStore holds the working copy of all admin-editable fields and a
// single dirty flag. Edits accumulate locally until they are flushed with
// Save or dropped with Discard; the persisted store is never touched
// field by field.
type PendingStore struct {
	backend Backend
	catalog []model.Product

	data    *model.StoreData
	dirty   bool
	admin   bool
	editing bool
}

// NewPendingStore creates a PendingStore over the given backend and
// catalog. The working copy starts from defaults until Hydrate runs.
func NewPendingStore(backend Backend, catalog []model.Product) *PendingStore {
	return &PendingStore{
		backend: backend,
		catalog: catalog,
		data:    model.DefaultStoreData(),
	}
}

// Hydrate replaces the working copy with the persisted aggregate and
// clears the dirty flag.
func (p *PendingStore) Hydrate(ctx context.Context) {
	p.data = p.backend.LoadStoreData(ctx)
	p.dirty = false
}

// SetAdmin records whether the session has admin access.
func (p *PendingStore) SetAdmin(admin bool) {
	p.admin = admin
	if !admin {
		p.editing = false
	}
}

// SetEditing toggles edit mode. Mutations only apply while editing.
func (p *PendingStore) SetEditing(editing bool) {
	if p.admin {
		p.editing = editing
	}
}

// Dirty reports whether unsaved edits exist.
func (p *PendingStore) Dirty() bool { return p.dirty }

// Editing reports whether the store is in admin edit mode.
func (p *PendingStore) Editing() bool { return p.admin && p.editing }

// Data returns a copy of the working aggregate. Callers cannot mutate
// the store through it; all edits go through the mutators so the dirty
// flag stays truthful.
func (p *PendingStore) Data() model.StoreData {
	return *p.data.Clone()
}

// canEdit gates every mutation: outside admin edit mode they are no-ops.
func (p *PendingStore) canEdit() bool {
	return p.admin && p.editing
}

// touch marks the working copy dirty. All mutators funnel through here.
func (p *PendingStore) touch() {
	p.dirty = true
}

// SetStock toggles a product's in-stock flag.
func (p *PendingStore) SetStock(productID string, inStock bool) {
	if !p.canEdit() {
		return
	}
	p.data.Stock[productID] = inStock
	p.touch()
}

// SetPrice records a price override. Non-positive values are ignored.
func (p *PendingStore) SetPrice(productID string, price int) {
	if !p.canEdit() || price <= 0 {
		return
	}
	p.data.Prices[productID] = price
	p.touch()
}

// ToggleOpen flips the store open/closed.
func (p *PendingStore) ToggleOpen() {
	if !p.canEdit() {
		return
	}
	p.data.Settings.IsOpen = !p.data.Settings.IsOpen
	p.touch()
}

// ToggleDelivery flips delivery availability.
func (p *PendingStore) ToggleDelivery() {
	if !p.canEdit() {
		return
	}
	p.data.Settings.DeliveryAvailable = !p.data.Settings.DeliveryAvailable
	p.touch()
}

// TogglePickup flips pickup availability.
func (p *PendingStore) TogglePickup() {
	if !p.canEdit() {
		return
	}
	p.data.Settings.PickupAvailable = !p.data.Settings.PickupAvailable
	p.touch()
}

// SetOffer selects the active promotional banner.
func (p *PendingStore) SetOffer(offer model.OfferType) {
	if !p.canEdit() {
		return
	}
	p.data.Offer = offer
	p.touch()
}

// ToggleSectionOrder flips which catalog section renders first.
func (p *PendingStore) ToggleSectionOrder() {
	if !p.canEdit() {
		return
	}
	if p.data.SectionOrder == model.MilkyFirst {
		p.data.SectionOrder = model.WaterFirst
	} else {
		p.data.SectionOrder = model.MilkyFirst
	}
	p.touch()
}

// SetSocialLinks replaces the social handles.
func (p *PendingStore) SetSocialLinks(links model.SocialLinks) {
	if !p.canEdit() {
		return
	}
	p.data.SocialLinks = links
	p.touch()
}

// SetThemeColors replaces one theme's element palette.
func (p *PendingStore) SetThemeColors(theme string, colors model.ElementColors) {
	if !p.canEdit() {
		return
	}
	if p.data.ThemeColors == nil {
		p.data.ThemeColors = model.DefaultThemeColors()
	}
	switch theme {
	case "light":
		p.data.ThemeColors.Light = colors
	case "dark":
		p.data.ThemeColors.Dark = colors
	default:
		return
	}
	p.touch()
}

// SetCustomColors replaces the legacy palette.
func (p *PendingStore) SetCustomColors(colors model.CustomColors) {
	if !p.canEdit() {
		return
	}
	p.data.CustomColors = colors
	p.touch()
}

// Save flushes the full working aggregate in one request. On success the
// dirty flag clears; on failure every pending edit stays in place for
// retry.
func (p *PendingStore) Save(ctx context.Context) error {
	if !p.canEdit() {
		return nil
	}
	if err := p.backend.SaveStoreData(ctx, p.data); err != nil {
		return err
	}
	p.dirty = false
	return nil
}

// Discard drops all pending edits by re-hydrating from the persisted
// store.
func (p *PendingStore) Discard(ctx context.Context) {
	p.Hydrate(ctx)
}

// EffectivePrice resolves a product's price against the working copy:
// a positive override wins, otherwise the catalog default.
func (p *PendingStore) EffectivePrice(productID string) int {
	for _, prod := range p.catalog {
		if prod.ID != productID {
			continue
		}
		if override, ok := p.data.Prices[productID]; ok && override > 0 {
			return override
		}
		return prod.Price
	}
	return 0
}

// InStock treats a product as available unless explicitly marked false.
func (p *PendingStore) InStock(productID string) bool {
	v, ok := p.data.Stock[productID]
	return !ok || v
}

// ProductsByCategory returns one category of the catalog with effective
// prices applied, in-stock items stably sorted before out-of-stock ones.
func (p *PendingStore) ProductsByCategory(cat model.Category) []model.CatalogEntry {
	var entries []model.CatalogEntry
	for _, prod := range p.catalog {
		if prod.Category != cat {
			continue
		}
		prod.Price = p.EffectivePrice(prod.ID)
		entries = append(entries, model.CatalogEntry{
			Product: prod,
			InStock: p.InStock(prod.ID),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].InStock && !entries[j].InStock
	})
	return entries
}

// Sections returns the catalog categories in configured render order.
func (p *PendingStore) Sections() []model.Category {
	if p.data.SectionOrder == model.WaterFirst {
		return []model.Category{model.CategoryWater, model.CategoryMilky}
	}
	return []model.Category{model.CategoryMilky, model.CategoryWater}
}
