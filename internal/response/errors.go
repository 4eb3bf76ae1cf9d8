package response

// ErrCode is a typed error code enum for consistent API error identification.
// Codes travel in the flat `error` field of responses.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired    ErrCode = "token_required"
	ErrInvalidToken     ErrCode = "invalid_token"
	ErrExpiredToken     ErrCode = "expired"
	ErrActivationFailed ErrCode = "activation_failed"
	ErrUnauthorized     ErrCode = "unauthorized"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "validation_error"

	// ─── Persistence ───────────────────────────────────────────────────
	ErrPersistence ErrCode = "persistence_error"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "rate_limited"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "internal_error"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired:
		return "Se requiere un token de activación."
	case ErrInvalidToken:
		return "El token de activación no es válido."
	case ErrExpiredToken:
		return "El token de activación expiró."
	case ErrActivationFailed:
		return "No se pudo activar el acceso. Verificá el token y el PIN."
	case ErrUnauthorized:
		return "Necesitás una sesión de administrador activa."
	case ErrValidation:
		return "La solicitud no es válida. Revisá los datos enviados."
	case ErrPersistence:
		return "No se pudieron guardar los cambios. Intentá de nuevo."
	case ErrRateLimitExceeded:
		return "Demasiados intentos. Esperá un momento."
	case ErrInternal:
		return "Ocurrió un error interno."
	default:
		return "Ocurrió un error inesperado."
	}
}
