package domain

import "strings"

// Style is a named writing-style preset offered to clients.
type Style struct {
	ID    string // stable key sent by clients, lowercase
	Label string // human label shown in pickers
	Hint  string // text placed under "Writing Style" in the prompt
}

// DefaultStyles returns the built-in presets in display order.
func DefaultStyles() []Style {
	return []Style{
		{ID: "professional", Label: "Professional", Hint: "Professional: polished and courteous, focused on business value."},
		{ID: "casual", Label: "Casual & Friendly", Hint: "Casual & Friendly: warm and conversational, as between peers."},
		{ID: "direct", Label: "Direct & Concise", Hint: "Direct & Concise: short sentences that get to the point quickly."},
		{ID: "consultative", Label: "Consultative", Hint: "Consultative: curious and advisory, opening with a thoughtful question."},
		{ID: "enthusiastic", Label: "Enthusiastic", Hint: "Enthusiastic: energetic and upbeat while staying credible."},
	}
}

// NormalizeStyleID lowercases and trims a style key.
func NormalizeStyleID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
