package common

const (
	// MaxRequestBody limits JSON request bodies.
	MaxRequestBody = 1 << 20
	// DefaultPageLimit is used when a list request omits limit.
	DefaultPageLimit = 20
	// MaxPageLimit caps list request limits.
	MaxPageLimit = 100
)
