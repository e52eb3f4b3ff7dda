package sync

// Report is the outcome of one synchronizer run. A run is best effort: item
// failures are collected here and never abort the pass.
type Report struct {
	Count  int             `json:"count"`
	Synced []SyncedProduct `json:"products"`
	Errors []ItemError     `json:"errors,omitempty"`
}

type SyncedProduct struct {
	Name         string `json:"name"`
	ExternalID   string `json:"external_id"`
	ImageUpdated bool   `json:"image_updated,omitempty"`
}

type ItemError struct {
	Product string `json:"product"`
	Reason  string `json:"error"`
}

func (r *Report) addError(product, reason string) {
	r.Errors = append(r.Errors, ItemError{Product: product, Reason: reason})
}
