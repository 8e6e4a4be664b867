// Package inspect implements the inspection editing and reporting rules:
// applying a single field edit to one item, keeping the derived overall
// rating consistent, and summarizing a record for display.
package inspect

import (
	"errors"
	"math"

	"carspect/internal/catalog"
	"carspect/internal/domain"
)

var (
	ErrUnknownCategory  = errors.New("unknown category")
	ErrUnknownItem      = errors.New("item not in category")
	ErrInvalidStatus    = errors.New("invalid item status")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

// Edit is a single field-level change to one item. Exactly one field of the
// item is affected; everything else is preserved.
type Edit interface {
	apply(st *domain.ItemState) error
	// affectsRating reports whether applying the edit requires the overall
	// rating to be recomputed.
	affectsRating() bool
}

// SetStatus changes the item's working/not-working/not-applicable state.
type SetStatus struct {
	Status domain.ItemStatus
}

func (e SetStatus) apply(st *domain.ItemState) error {
	if !e.Status.IsValid() {
		return ErrInvalidStatus
	}
	st.Status = e.Status
	return nil
}

func (SetStatus) affectsRating() bool { return false }

// SetImages replaces the item's image reference list.
type SetImages struct {
	Images []string
}

func (e SetImages) apply(st *domain.ItemState) error {
	imgs := make([]string, len(e.Images))
	copy(imgs, e.Images)
	st.Images = imgs
	return nil
}

func (SetImages) affectsRating() bool { return false }

// SetNotes replaces the item's free-text notes.
type SetNotes struct {
	Notes string
}

func (e SetNotes) apply(st *domain.ItemState) error {
	st.Notes = e.Notes
	return nil
}

func (SetNotes) affectsRating() bool { return false }

// SetRating rates the item 1..5. Out-of-range values are rejected.
type SetRating struct {
	Rating int
}

func (e SetRating) apply(st *domain.ItemState) error {
	if e.Rating < 1 || e.Rating > 5 {
		return ErrRatingOutOfRange
	}
	r := e.Rating
	st.Rating = &r
	return nil
}

func (SetRating) affectsRating() bool { return true }

// ClearRating removes the item's rating, returning it to "not rated".
type ClearRating struct{}

func (ClearRating) apply(st *domain.ItemState) error {
	st.Rating = nil
	return nil
}

func (ClearRating) affectsRating() bool { return true }

// ApplyEdit applies edit to (categoryID, itemName) and returns a new record
// with every other field untouched. The input record is never mutated;
// untouched categories share storage with the input. Items never edited
// before start from the default state. Category and item are validated
// against the catalog.
//
// When the edit changes a rating, the overall rating is recomputed from
// scratch before the record is returned.
func ApplyEdit(insp *domain.Inspection, categoryID catalog.ID, itemName string, edit Edit) (*domain.Inspection, error) {
	cat, ok := catalog.ByID(categoryID)
	if !ok {
		return nil, ErrUnknownCategory
	}
	if !cat.HasItem(itemName) {
		return nil, ErrUnknownItem
	}

	st := insp.Item(categoryID, itemName)
	// Copy the image slice so edits to the new record can never reach back
	// into the input. The copy stays non-nil: an untouched item serializes
	// with an empty image list, not null.
	imgs := make([]string, len(st.Images))
	copy(imgs, st.Images)
	st.Images = imgs
	if err := edit.apply(&st); err != nil {
		return nil, err
	}

	out := *insp
	out.Categories = make(map[catalog.ID]domain.CategoryData, len(insp.Categories)+1)
	for id, cd := range insp.Categories {
		out.Categories[id] = cd
	}

	cd := make(domain.CategoryData, len(insp.Categories[categoryID])+1)
	for name, item := range insp.Categories[categoryID] {
		cd[name] = item
	}
	cd[itemName] = st
	out.Categories[categoryID] = cd

	if edit.affectsRating() {
		return RecomputeOverallRating(&out), nil
	}
	return &out, nil
}

// RecomputeOverallRating returns a copy of insp whose OverallRating is the
// mean of every present item rating, rounded half-up to one decimal, or nil
// when nothing is rated. It walks the whole record rather than adjusting
// incrementally: the item count is small and a full pass cannot drift.
func RecomputeOverallRating(insp *domain.Inspection) *domain.Inspection {
	sum, count := 0, 0
	for _, cd := range insp.Categories {
		for _, st := range cd {
			if st.Rating != nil {
				sum += *st.Rating
				count++
			}
		}
	}

	out := *insp
	if count == 0 {
		out.OverallRating = nil
		return &out
	}
	avg := round1(float64(sum) / float64(count))
	out.OverallRating = &avg
	return &out
}

// round1 rounds half-up to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
