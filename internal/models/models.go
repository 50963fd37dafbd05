// package models defines the data model for playlists, tracks and provider config
package models

import (
	"time"
)

// Record holds the fields every entity shares. They are owned by the repositories:
// collaborators never set them.
type Record struct {
	ID       string    `json:"id,omitempty"`
	Sequence int       `json:"sequence,omitempty"`
	Modified time.Time `json:"modified,omitzero"`
}

// Base returns the shared record fields.
func (r *Record) Base() *Record { return r }

// Entity is implemented by every persistent model.
type Entity interface {
	Base() *Record   // Base returns the manager-owned fields
	Identity() []any // Identity returns the content fields the id is derived from
	Validate() error // Validate checks the entity before it is written
}

// Repository defines the data access operations shared by all entity kinds.
type Repository[T Entity] interface {
	Set(model T) (T, error)                    // Set creates or merges a model by identity
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Find(criteria map[string]any) ([]T, error) // Find retrieves all models matching the given criteria
	Update(model T, change func(T)) (T, error) // Update applies change to a stored model
	Remove(id string) error                    // Remove deletes a model by its ID
}
