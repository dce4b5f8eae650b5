package model

// Glance is the small status descriptor pushed to the room UI after a
// successful history toggle.
type Glance struct {
	Label  GlanceLabel  `json:"label"`
	Status GlanceStatus `json:"status"`
}

type GlanceLabel struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type GlanceStatus struct {
	Type  string       `json:"type"`
	Value GlanceStatusValue `json:"value"`
}

type GlanceStatusValue struct {
	Label string `json:"label"`
	Type  string `json:"type"`
}

// NewGlance builds the descriptor for the given history-flag state.
func NewGlance(enabled bool) Glance {
	status := GlanceStatusValue{Label: "disabled", Type: "default"}
	if enabled {
		status = GlanceStatusValue{Label: "enabled", Type: "success"}
	}

	return Glance{
		Label:  GlanceLabel{Type: "html", Value: "Guest History"},
		Status: GlanceStatus{Type: "lozenge", Value: status},
	}
}
