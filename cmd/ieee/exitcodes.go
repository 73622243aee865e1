package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (no workspace, invalid config)
	ExitDataError   = 3 // Data error (malformed input, unknown reference)

	// Semantic Scholar commands
	ExitS2NotFound  = 1 // Paper not found
	ExitS2AuthError = 2 // Invalid S2_API_KEY
	ExitS2APIError  = 3 // API error (rate limit, network)
)
