package models

// HistoryEntry is one past generation kept by the client.
// The JSON layout matches what the browser page stores under argumentHistory.
type HistoryEntry struct {
	Opponent  string   `json:"opponent"`
	Intensity int      `json:"intensity"`
	Responses []string `json:"responses"`
}
