package model

// Category splits the catalog into its two storefront sections.
// "milky" renders as Remeras, "water" as Pantalones; the internal names
// predate the clothing catalog and are kept for stock/price key stability.
type Category string

const (
	CategoryMilky Category = "milky"
	CategoryWater Category = "water"
)

// Product is a catalog entry with its default price.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Category    Category `json:"category"`
	Gradient    string   `json:"gradient"`
}

// CatalogEntry is a product resolved against the persisted store:
// price overrides applied, stock flag attached.
type CatalogEntry struct {
	Product
	InStock bool `json:"inStock"`
}

// DefaultCatalog returns the built-in product list, used to seed the
// database and as the client-side catalog.
func DefaultCatalog() []Product {
	return []Product{
		{ID: "w1", Name: "Pantalón Cargo Negro", Description: "Estilo urbano, múltiples bolsillos.", Price: 35000, Category: CategoryWater, Gradient: "from-stone-700 to-stone-900"},
		{ID: "w2", Name: "Jeans Clásico Azul", Description: "El jean que no puede faltar en tu ropero.", Price: 32000, Category: CategoryWater, Gradient: "from-blue-600 to-blue-800"},
		{ID: "w3", Name: "Pantalón Jogger Gris", Description: "Comodidad extrema para tu día a día.", Price: 28000, Category: CategoryWater, Gradient: "from-gray-300 to-gray-500"},
		{ID: "w4", Name: "Pantalón Chino Beige", Description: "Elegancia y confort para ocasiones casuales.", Price: 34000, Category: CategoryWater, Gradient: "from-stone-200 to-stone-400"},
		{ID: "m1", Name: "Remera Básica Blanca", Description: "100% Algodón peinado. Un must-have.", Price: 15000, Category: CategoryMilky, Gradient: "from-gray-100 to-white"},
		{ID: "m2", Name: "Remera Oversize Negra", Description: "Corte amplio y moderno.", Price: 18000, Category: CategoryMilky, Gradient: "from-stone-800 to-black"},
		{ID: "m3", Name: "Remera Estampada Rock", Description: "Diseño exclusivo con vibras vintage.", Price: 19500, Category: CategoryMilky, Gradient: "from-red-800 to-stone-900"},
		{ID: "m4", Name: "Musculosa Deportiva", Description: "Tela respirable, ideal para entrenar.", Price: 13000, Category: CategoryMilky, Gradient: "from-blue-400 to-blue-600"},
	}
}
