// package repositories provides persistence layer implementations for all model types.
package repositories

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/tuber/internal/models"
)

// Registry paths
const (
	configRoot    = "config"
	entitiesRoot  = "entities"
	trackSpace    = "track"
	playlistSpace = "playlist"
)

// idLength is the number of hex characters kept from the identity hash.
const idLength = 12

// HashFields derives a short, stable identifier from an ordered list of content fields.
//
// Fields are JSON encoded before hashing. Maps encode with sorted keys, so two
// argument maps with the same entries hash the same regardless of how they
// were built. Fields must be JSON encodable: strings, numbers, bools, and maps
// or slices of those.
func HashFields(fields ...any) string {
	data, err := json.Marshal(fields)
	if err != nil {
		panic(fmt.Sprintf("repositories: identity fields are not encodable: %v", err))
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])[:idLength]
}

// contentID is the identity function for content-addressed entities.
func contentID[P models.Entity](p P) string {
	return HashFields(p.Identity()...)
}
