package dto

// Resolution target kinds
const (
	TargetKindDocument = "document"
	TargetKindLink     = "link"
	TargetKindNotFound = "not_found"
)

// ResolutionTarget is the outcome of resolving (username, identifier).
// Exactly one kind applies; LinkID is populated only for link targets so the
// caller can emit click analytics.
type ResolutionTarget struct {
	Kind   string `json:"kind"`
	URL    string `json:"url,omitempty"`
	LinkID string `json:"link_id,omitempty"`
}

// IsFound reports whether the target resolves to a redirect.
func (t *ResolutionTarget) IsFound() bool {
	return t != nil && t.Kind != TargetKindNotFound
}

// RedirectStateResponse is the contract exposed to the UI collaborator.
type RedirectStateResponse struct {
	NotFound    bool    `json:"not_found"`
	RedirectURL *string `json:"redirect_url"`
}
