package component

import "github.com/emberhollow/settlement/internal/core/ecs"

// Family holds back-references only: partner, children, and home are plain
// ids resolved through the store at use time, never owning references.
// Partner↔partner and child→parent form cycles by design; absence of the
// referent is the normal "missing reference" case, not an error.
type Family struct {
	Partner  ecs.EntityID   `json:"partner,omitempty"`
	Children []ecs.EntityID `json:"children,omitempty"`
	Home     ecs.EntityID   `json:"home,omitempty"`
}
