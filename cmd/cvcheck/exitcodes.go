package main

// Exit codes shared by all commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable config file)
	ExitDataError   = 3 // Data error (malformed input, no publications found)
	ExitAPIError    = 4 // External API error (rate limit, network)
)
