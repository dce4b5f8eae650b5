package model

// HookType mirrors FlagName: each flag owns one kind of remote subscription.
type HookType string

const (
	HookHistory  HookType = "history"
	HookGreeting HookType = "greeting"
)

// HookEntry records one live remote subscription and the id the platform
// assigned to it, so it can be torn down later.
type HookEntry struct {
	Type HookType `json:"type"`
	ID   string   `json:"id"`
}

// HookRecord holds every remote hook registered for a room. Entries are meant
// to correspond 1:1 with live remote subscriptions; an entry whose remote
// removal failed is a recoverable inconsistency, not a crash.
type HookRecord struct {
	Hooks []HookEntry `json:"hooks"`
}

// Greeting returns the greeting entry, if any.
func (r *HookRecord) Greeting() (HookEntry, bool) {
	return r.find(HookGreeting)
}

// History returns the history entry, if any.
func (r *HookRecord) History() (HookEntry, bool) {
	return r.find(HookHistory)
}

func (r *HookRecord) find(t HookType) (HookEntry, bool) {
	for _, h := range r.Hooks {
		if h.Type == t {
			return h, true
		}
	}
	return HookEntry{}, false
}

// Remove drops every entry of the given type and reports whether anything
// was removed.
func (r *HookRecord) Remove(t HookType) bool {
	kept := r.Hooks[:0]
	removed := false
	for _, h := range r.Hooks {
		if h.Type == t {
			removed = true
			continue
		}
		kept = append(kept, h)
	}
	r.Hooks = kept
	return removed
}
