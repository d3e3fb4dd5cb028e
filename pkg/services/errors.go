package services

import "errors"

// Failure kinds of the generation flow. Their messages are shown to end users
// verbatim, so they never carry internal detail; causes are wrapped around them.
var (
	ErrUnauthorized           = errors.New("Unauthorized")
	ErrValidation             = errors.New("Pinterest URL is required")
	ErrProviderRateLimited    = errors.New("Rate limit exceeded. Please try again in a moment.")
	ErrProviderQuotaExhausted = errors.New("AI credits depleted. Please contact support.")
	ErrProviderFailure        = errors.New("Failed to generate playlist")
	ErrPersistence            = errors.New("Failed to save playlist")
)

// UserMessage returns the user-facing message for err: the first known kind
// it wraps, or a generic message.
func UserMessage(err error) string {
	for _, kind := range []error{
		ErrUnauthorized,
		ErrValidation,
		ErrProviderRateLimited,
		ErrProviderQuotaExhausted,
		ErrProviderFailure,
		ErrPersistence,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "An error occurred"
}

var (
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrForbidden        = errors.New("you do not have permission to access this playlist")
)
