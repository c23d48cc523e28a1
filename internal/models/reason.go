package models

// ReasonType is a catalog entry describing why equipment failed.
type ReasonType struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Matches reports whether a user-supplied selector refers to this catalog
// entry, by code or by description.
func (rt ReasonType) Matches(selector string) bool {
	return selector != "" && (rt.Code == selector || rt.Description == selector)
}

// FailureReason pairs a catalog reason type with a free-text comment.
// Immutable once constructed; attached to exactly one StateChange.
type FailureReason struct {
	Type    ReasonType `json:"type"`
	Comment string     `json:"comment"`
}
