// Package domain contains the inspection record model. JSON field names and
// enum tokens are wire-stable: stored records written by earlier versions of
// the app use exactly these strings.
package domain

import (
	"time"

	"github.com/google/uuid"

	"carspect/internal/catalog"
)

// ItemStatus is the checked state of a single inspection item.
type ItemStatus string

const (
	StatusWorking       ItemStatus = "working"
	StatusNotWorking    ItemStatus = "not-working"
	StatusNotApplicable ItemStatus = "not-applicable"
)

func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusWorking, StatusNotWorking, StatusNotApplicable:
		return true
	}
	return false
}

// InspectionStatus is the lifecycle state of a whole inspection. Transitions
// are user-driven and independent of item edits.
type InspectionStatus string

const (
	InspectionPending    InspectionStatus = "pending"
	InspectionInProgress InspectionStatus = "in-progress"
	InspectionCompleted  InspectionStatus = "completed"
)

func (s InspectionStatus) IsValid() bool {
	switch s {
	case InspectionPending, InspectionInProgress, InspectionCompleted:
		return true
	}
	return false
}

// ItemState holds everything recorded against one inspection item. Rating is
// nil when the item has not been rated; unrated items are excluded from
// averages.
type ItemState struct {
	Status ItemStatus `json:"status"`
	Images []string   `json:"images"`
	Notes  string     `json:"notes,omitempty"`
	Rating *int       `json:"rating,omitempty"`
}

// DefaultItemState is the state of an item that has never been edited.
func DefaultItemState() ItemState {
	return ItemState{Status: StatusWorking, Images: []string{}}
}

// CategoryData maps item name to recorded state. An item absent from the map
// is unvisited and contributes to nothing.
type CategoryData map[string]ItemState

// Inspection is one vehicle's full inspection record. OverallRating is
// derived: it is only ever written by the rating recomputation, never
// directly by an edit.
type Inspection struct {
	ID            string                      `json:"id"`
	CarModel      string                      `json:"carModel"`
	CarYear       string                      `json:"carYear"`
	LicensePlate  string                      `json:"licensePlate"`
	CreatedAt     time.Time                   `json:"createdAt"`
	Status        InspectionStatus            `json:"status"`
	Categories    map[catalog.ID]CategoryData `json:"categories"`
	OverallRating *float64                    `json:"overallRating,omitempty"`
}

// NewInspection creates a pending record with a fresh id and empty
// categories.
func NewInspection(carModel, carYear, licensePlate string) *Inspection {
	return &Inspection{
		ID:           uuid.NewString(),
		CarModel:     carModel,
		CarYear:      carYear,
		LicensePlate: licensePlate,
		CreatedAt:    time.Now().UTC(),
		Status:       InspectionPending,
		Categories:   map[catalog.ID]CategoryData{},
	}
}

// Item returns the recorded state for (categoryID, itemName), falling back
// to the default state when the item has never been touched.
func (i *Inspection) Item(categoryID catalog.ID, itemName string) ItemState {
	if cd, ok := i.Categories[categoryID]; ok {
		if st, ok := cd[itemName]; ok {
			return st
		}
	}
	return DefaultItemState()
}
