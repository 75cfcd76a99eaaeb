package handlers

const (
	// Error messages returned in the "error" field of /api/generate
	errMsgNotConfigured  = "API key not configured"
	errMsgInvalidParams  = "Invalid parameters"
	errMsgGenerateFailed = "Failed to generate responses"

	maxRecentGenerations = 100 // Maximum page size for the generation log
	defaultRecentLimit   = 20
)
