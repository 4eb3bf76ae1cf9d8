package model

// OfferType identifies the promotional banner currently running.
type OfferType string

const (
	OfferNone     OfferType = "none"
	Offer2x1Milky OfferType = "2x1_milky"
	Offer2x1Water OfferType = "2x1_water"
	Offer2x1All   OfferType = "2x1_all"
)

// SectionOrder controls which catalog section renders first.
type SectionOrder string

const (
	MilkyFirst SectionOrder = "milky-first"
	WaterFirst SectionOrder = "water-first"
)

// StoreSettings holds the storefront availability toggles.
type StoreSettings struct {
	IsOpen            bool `json:"isOpen"`
	DeliveryAvailable bool `json:"deliveryAvailable"`
	PickupAvailable   bool `json:"pickupAvailable"`
}

// SocialLinks holds the admin-editable social handles. Free text.
type SocialLinks struct {
	Instagram string `json:"instagram"`
	TikTok    string `json:"tiktok"`
	WhatsApp  string `json:"whatsapp"`
}

// ElementColors is the per-theme palette for the customizable UI elements.
type ElementColors struct {
	NavbarColor   string  `json:"navbarColor"`
	NavbarOpacity float64 `json:"navbarOpacity"` // 0..1
	Background    string  `json:"background"`
	CardBg        string  `json:"cardBg"`
	Text          string  `json:"text"`
	Accent        string  `json:"accent"`
}

// ThemeColors pairs light and dark palettes.
type ThemeColors struct {
	Light ElementColors `json:"light"`
	Dark  ElementColors `json:"dark"`
}

// CustomColors is the legacy single-palette scheme, kept for clients
// that predate theme-aware colors.
type CustomColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	CardBg     string `json:"cardBg"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
}

// StoreData is the full admin-editable aggregate persisted as one value.
// It is read wholesale and written wholesale; there are no field-level
// transactions.
type StoreData struct {
	Stock        map[string]bool `json:"stock"`
	Prices       map[string]int  `json:"prices"`
	Settings     StoreSettings   `json:"settings"`
	Offer        OfferType       `json:"offer"`
	SectionOrder SectionOrder    `json:"sectionOrder"`
	SocialLinks  SocialLinks     `json:"socialLinks"`
	CustomColors CustomColors    `json:"customColors"`
	ThemeColors  *ThemeColors    `json:"themeColors,omitempty"`
}

// DefaultSocialLinks returns the out-of-the-box social handles.
func DefaultSocialLinks() SocialLinks {
	return SocialLinks{
		Instagram: "",
		TikTok:    "",
		WhatsApp:  "5491155146230",
	}
}

// DefaultCustomColors returns the legacy palette defaults.
func DefaultCustomColors() CustomColors {
	return CustomColors{
		Primary:    "#78716C",
		Secondary:  "#EC4899",
		Background: "#F5F5F4",
		CardBg:     "#FFFFFF",
		Text:       "#1C1917",
		Accent:     "#F97316",
	}
}

// DefaultThemeColors returns the element palettes matching the current design.
func DefaultThemeColors() *ThemeColors {
	return &ThemeColors{
		Light: ElementColors{
			NavbarColor:   "#FFB9D2",
			NavbarOpacity: 0.80,
			Background:    "#F5F5F7",
			CardBg:        "#FFFFFF",
			Text:          "#1C1917",
			Accent:        "#25D366",
		},
		Dark: ElementColors{
			NavbarColor:   "#580C28",
			NavbarOpacity: 0.85,
			Background:    "#1C1917",
			CardBg:        "#292524",
			Text:          "#FAFAF9",
			Accent:        "#25D366",
		},
	}
}

// DefaultStoreData returns the aggregate a fresh store starts from, and the
// fallback when the persisted store cannot be read.
func DefaultStoreData() *StoreData {
	return &StoreData{
		Stock:  map[string]bool{},
		Prices: map[string]int{},
		Settings: StoreSettings{
			IsOpen:            true,
			DeliveryAvailable: true,
			PickupAvailable:   true,
		},
		Offer:        OfferNone,
		SectionOrder: MilkyFirst,
		SocialLinks:  DefaultSocialLinks(),
		CustomColors: DefaultCustomColors(),
		ThemeColors:  DefaultThemeColors(),
	}
}

// ApplyDefaults fills absent optional fields with their documented defaults.
func (d *StoreData) ApplyDefaults() {
	if d.Stock == nil {
		d.Stock = map[string]bool{}
	}
	if d.Prices == nil {
		d.Prices = map[string]int{}
	}
	if d.Offer == "" {
		d.Offer = OfferNone
	}
	if d.SectionOrder == "" {
		d.SectionOrder = MilkyFirst
	}
	if d.SocialLinks == (SocialLinks{}) {
		d.SocialLinks = DefaultSocialLinks()
	}
	if d.CustomColors == (CustomColors{}) {
		d.CustomColors = DefaultCustomColors()
	}
	if d.ThemeColors == nil {
		d.ThemeColors = DefaultThemeColors()
	}
}

// Clone returns a deep copy of the aggregate.
func (d *StoreData) Clone() *StoreData {
	out := *d
	out.Stock = make(map[string]bool, len(d.Stock))
	for k, v := range d.Stock {
		out.Stock[k] = v
	}
	out.Prices = make(map[string]int, len(d.Prices))
	for k, v := range d.Prices {
		out.Prices[k] = v
	}
	if d.ThemeColors != nil {
		tc := *d.ThemeColors
		out.ThemeColors = &tc
	}
	return &out
}

// StoreDataPatch is a partial aggregate posted by the admin client.
// Nil fields are left untouched on the persisted value.
type StoreDataPatch struct {
	Stock        map[string]bool `json:"stock"`
	Prices       map[string]int  `json:"prices"`
	Settings     *StoreSettings  `json:"settings"`
	Offer        *OfferType      `json:"offer"`
	SectionOrder *SectionOrder   `json:"sectionOrder"`
	SocialLinks  *SocialLinks    `json:"socialLinks"`
	CustomColors *CustomColors   `json:"customColors"`
	ThemeColors  *ThemeColors    `json:"themeColors"`
}

// ApplyTo overlays the patch onto dst.
func (p *StoreDataPatch) ApplyTo(dst *StoreData) {
	if p.Stock != nil {
		dst.Stock = p.Stock
	}
	if p.Prices != nil {
		dst.Prices = p.Prices
	}
	if p.Settings != nil {
		dst.Settings = *p.Settings
	}
	if p.Offer != nil {
		dst.Offer = *p.Offer
	}
	if p.SectionOrder != nil {
		dst.SectionOrder = *p.SectionOrder
	}
	if p.SocialLinks != nil {
		dst.SocialLinks = *p.SocialLinks
	}
	if p.CustomColors != nil {
		dst.CustomColors = *p.CustomColors
	}
	if p.ThemeColors != nil {
		dst.ThemeColors = p.ThemeColors
	}
}
