package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/websopen/web-valencio/internal/model"
)

// StoreRepository is the persisted key-value store holding the aggregate.
type StoreRepository interface {
	Load(ctx context.Context) (*model.StoreData, error)
	Save(ctx context.Context, data *model.StoreData) error
	HasData(ctx context.Context) (bool, error)
}

// ProductRepository supplies the catalog with default prices.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
}

// StoreService handles store data reads, admin saves and catalog resolution.
type StoreService struct {
	repo     StoreRepository
	products ProductRepository
	log      zerolog.Logger
}

// NewStoreService creates a new StoreService.
func NewStoreService(repo StoreRepository, products ProductRepository, log zerolog.Logger) *StoreService {
	return &StoreService{
		repo:     repo,
		products: products,
		log:      log.With().Str("component", "store_service").Logger(),
	}
}

// Load returns the persisted aggregate with defaults filled in. It never
// fails: a read error falls back to full defaults so the storefront is
// never blocked by the store backend.
func (s *StoreService) Load(ctx context.Context) *model.StoreData {
	data, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("store data unavailable, serving defaults")
		return model.DefaultStoreData()
	}
	data.ApplyDefaults()
	return data
}

// Save overlays the posted patch onto the persisted aggregate and writes
// the result back as one atomic replacement. No partial apply: on error
// the persisted value is untouched.
func (s *StoreService) Save(ctx context.Context, patch *model.StoreDataPatch) error {
	current, err := s.repo.Load(ctx)
	if err != nil {
		// First save or unreadable value: patch over defaults.
		current = model.DefaultStoreData()
	}
	current.ApplyDefaults()
	patch.ApplyTo(current)

	if err := s.repo.Save(ctx, current); err != nil {
		s.log.Error().Err(err).Msg("store save failed")
		return err
	}
	return nil
}

// HasData reports whether the aggregate was ever saved. Errors read as
// "no data" — the flag only drives onboarding hints.
func (s *StoreService) HasData(ctx context.Context) bool {
	has, err := s.repo.HasData(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("store data presence check failed")
		return false
	}
	return has
}

// Catalog returns the product list resolved against the persisted store:
// price overrides applied, in-stock items sorted before out-of-stock
// within each category (stable).
func (s *StoreService) Catalog(ctx context.Context) (*model.CatalogResponse, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	data := s.Load(ctx)

	resp := &model.CatalogResponse{
		Milky:        resolveCategory(products, model.CategoryMilky, data),
		Water:        resolveCategory(products, model.CategoryWater, data),
		SectionOrder: data.SectionOrder,
	}
	return resp, nil
}

// EffectivePrice resolves a product's price: a positive override wins,
// otherwise the catalog default applies.
func EffectivePrice(p model.Product, prices map[string]int) int {
	if override, ok := prices[p.ID]; ok && override > 0 {
		return override
	}
	return p.Price
}

// InStock treats a product as available unless explicitly marked false.
func InStock(id string, stock map[string]bool) bool {
	v, ok := stock[id]
	return !ok || v
}

func resolveCategory(products []model.Product, cat model.Category, data *model.StoreData) []model.CatalogEntry {
	var entries []model.CatalogEntry
	for _, p := range products {
		if p.Category != cat {
			continue
		}
		p.Price = EffectivePrice(p, data.Prices)
		entries = append(entries, model.CatalogEntry{
			Product: p,
			InStock: InStock(p.ID, data.Stock),
		})
	}
	// Two-bucket split only; ties keep their original relative order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].InStock && !entries[j].InStock
	})
	return entries
}
