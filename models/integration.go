package models

// Integration is the single optional email-provider link. It is set and
// cleared only by explicit connect/disconnect actions, never by the
// simulation.
type Integration struct {
	Provider string `json:"provider"`
	Account  string `json:"account"`
}
