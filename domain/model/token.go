package model

// TokenContext is the value behind the global forward mapping
// history_token:<token>. Resolving a token yields the tenant and room the
// anonymous visitor may read.
type TokenContext struct {
	ClientKey string       `json:"clientKey"`
	Room      RoomIdentity `json:"room"`
}
