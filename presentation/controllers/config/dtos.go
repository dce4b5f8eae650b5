package config

// FlagRequest accepts whatever the configuration page posts: booleans from
// the JSON form and strings from older form submissions.
type FlagRequest struct {
	Value any `json:"value"`
}

type FlagsResponse struct {
	History  bool `json:"history"`
	Greeting bool `json:"greeting"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
