package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/registry"
	"github.com/desertthunder/tuber/internal/shared"
)

// EntityRepository implements [models.Repository] for one registry namespace.
//
// E is the entity struct and P its pointer type. Records are stored at
// path/<id> as the JSON object form of P.
type EntityRepository[E any, P interface {
	*E
	models.Entity
}] struct {
	registry *registry.Registry
	path     []string
	identify func(P) string
	now      func() time.Time
}

func newEntityRepository[E any, P interface {
	*E
	models.Entity
}](r *registry.Registry, identify func(P) string, path ...string) *EntityRepository[E, P] {
	return &EntityRepository[E, P]{
		registry: r,
		path:     path,
		identify: identify,
		now:      time.Now,
	}
}

// SetClock replaces the time source used for modified/synced timestamps.
func (r *EntityRepository[E, P]) SetClock(now func() time.Time) {
	r.now = now
}

// Set creates the entity, or merges attrs into the record that has the same identity.
//
// Merging copies every attribute attrs carries (non-empty JSON fields) over the
// stored record and bumps the modified timestamp. The id and sequence of an
// existing record never change. Calling Set twice with the same identity
// fields updates one record.
func (r *EntityRepository[E, P]) Set(attrs P) (P, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	id := r.identify(attrs)
	fields, err := encode(attrs)
	if err != nil {
		return nil, err
	}
	delete(fields, "id")
	delete(fields, "sequence")
	delete(fields, "modified")

	stored, err := r.raw(id)
	switch {
	case err == nil:
		maps.Copy(stored, fields)
		fields = stored
	case errors.Is(err, shared.ErrNotFound):
		seq, err := r.nextSequence()
		if err != nil {
			return nil, err
		}
		fields["sequence"] = seq
	default:
		return nil, err
	}

	entity, err := decode[E, P](fields)
	if err != nil {
		return nil, err
	}
	entity.Base().ID = id
	return r.write(entity)
}

// Get retrieves the record with the given id.
func (r *EntityRepository[E, P]) Get(id string) (P, error) {
	fields, err := r.raw(id)
	if err != nil {
		return nil, err
	}
	return decode[E, P](fields)
}

// Find returns every record whose attributes equal all criteria, in insertion order.
//
// Criteria keys are JSON attribute names ("provider", "artist", ...). Values
// are compared after JSON encoding, so typed values such as [models.Provider]
// match their stored string form. Empty criteria return all records.
func (r *EntityRepository[E, P]) Find(criteria map[string]any) ([]P, error) {
	want, err := normalize(criteria)
	if err != nil {
		return nil, err
	}

	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	var results []P
	for id, value := range coll {
		fields, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not an object", shared.ErrMalformed, r.location(id))
		}
		if !matches(fields, want) {
			continue
		}
		entity, err := decode[E, P](fields)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].Base(), results[j].Base()
		if a.Sequence != b.Sequence {
			return a.Sequence < b.Sequence
		}
		return a.ID < b.ID
	})
	return results, nil
}

// Update applies change to the stored record, bumps modified and writes it back.
//
// model is updated in place on success. A change that alters the identity
// fields is rejected: it would describe a different entity.
func (r *EntityRepository[E, P]) Update(model P, change func(P)) (P, error) {
	id := model.Base().ID
	if _, err := r.raw(id); err != nil {
		return nil, err
	}

	fields, err := encode(model)
	if err != nil {
		return nil, err
	}
	updated, err := decode[E, P](fields)
	if err != nil {
		return nil, err
	}

	change(updated)
	if got := r.identify(updated); got != id {
		return nil, fmt.Errorf("%w: update would change identity of %s to %s", shared.ErrInvalidInput, r.location(id), got)
	}
	updated.Base().ID = id

	if _, err := r.write(updated); err != nil {
		return nil, err
	}
	*model = *updated
	return model, nil
}

// Remove deletes the record with the given id.
//
// References to it held by other records are left in place.
func (r *EntityRepository[E, P]) Remove(id string) error {
	if _, err := r.raw(id); err != nil {
		return err
	}

	coll, err := r.collection()
	if err != nil {
		return err
	}
	coll = maps.Clone(coll)
	delete(coll, id)
	r.registry.Set(coll, r.path...)
	return nil
}

// write validates entity, stamps modified and stores it under its id.
func (r *EntityRepository[E, P]) write(entity P) (P, error) {
	if err := entity.Validate(); err != nil {
		return nil, err
	}

	base := entity.Base()
	base.Modified = r.now()

	fields, err := encode(entity)
	if err != nil {
		return nil, err
	}
	r.registry.Set(fields, r.key(base.ID)...)
	return entity, nil
}

// raw returns a shallow copy of the stored attributes for id.
func (r *EntityRepository[E, P]) raw(id string) (map[string]any, error) {
	value, err := r.registry.Get(r.key(id)...)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, r.location(id))
	}
	if err != nil {
		return nil, err
	}
	fields, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an object", shared.ErrMalformed, r.location(id))
	}
	return maps.Clone(fields), nil
}

// collection returns the namespace mapping; an absent namespace is empty.
func (r *EntityRepository[E, P]) collection() (map[string]any, error) {
	value, err := r.registry.Get(r.path...)
	if errors.Is(err, shared.ErrNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	coll, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an object", shared.ErrMalformed, strings.Join(r.path, "."))
	}
	return coll, nil
}

// nextSequence returns one more than the highest sequence in the namespace.
func (r *EntityRepository[E, P]) nextSequence() (int, error) {
	coll, err := r.collection()
	if err != nil {
		return 0, err
	}

	highest := 0
	for _, value := range coll {
		fields, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if seq, ok := fields["sequence"].(float64); ok && int(seq) > highest {
			highest = int(seq)
		}
	}
	return highest + 1, nil
}

func (r *EntityRepository[E, P]) key(id string) []string {
	keys := make([]string, 0, len(r.path)+1)
	keys = append(keys, r.path...)
	return append(keys, id)
}

func (r *EntityRepository[E, P]) location(id string) string {
	return strings.Join(r.key(id), ".")
}

// encode converts v to its JSON object form.
func encode(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return fields, nil
}

// decode converts a JSON object form back into an entity.
func decode[E any, P interface {
	*E
	models.Entity
}](fields map[string]any) (P, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	entity := P(new(E))
	if err := json.Unmarshal(data, entity); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformed, err)
	}
	return entity, nil
}

// normalize gives criteria values the same representation as stored attributes.
func normalize(criteria map[string]any) (map[string]any, error) {
	if len(criteria) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("%w: criteria: %v", shared.ErrInvalidInput, err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: criteria: %v", shared.ErrInvalidInput, err)
	}
	return out, nil
}

func matches(fields, want map[string]any) bool {
	for k, v := range want {
		if !reflect.DeepEqual(fields[k], v) {
			return false
		}
	}
	return true
}
