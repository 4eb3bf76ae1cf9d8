package model

// ValidateTokenRequest is the payload for POST /api/auth/validate-token.
type ValidateTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// ActivateRequest is the payload for POST /api/auth/activate.
type ActivateRequest struct {
	Token string `json:"token" binding:"required"`
	PIN   string `json:"pin" binding:"required,len=4,numeric"`
}

// TokenValidationResponse mirrors the validate-token wire shape.
type TokenValidationResponse struct {
	Valid             bool   `json:"valid,omitempty"`
	AlreadyAssociated bool   `json:"alreadyAssociated,omitempty"`
	Error             string `json:"error,omitempty"`
	Message           string `json:"message,omitempty"`
}

// ActivationResponse mirrors the activate wire shape.
type ActivationResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// AuthCheckResponse mirrors the auth-check wire shape.
type AuthCheckResponse struct {
	IsAdmin           bool `json:"isAdmin"`
	OnboardingPending bool `json:"onboardingPending"`
}

// SaveResponse mirrors the store-settings wire shape.
type SaveResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// CatalogResponse groups the resolved catalog by section.
type CatalogResponse struct {
	Milky        []CatalogEntry `json:"milky"`
	Water        []CatalogEntry `json:"water"`
	SectionOrder SectionOrder   `json:"sectionOrder"`
}
