package inspect

import (
	"time"

	"carspect/internal/catalog"
	"carspect/internal/domain"
)

// ReportView is the display-ready summary of one inspection. It is derived
// entirely from the record: the same record always yields the same view.
type ReportView struct {
	ID            string                  `json:"id"`
	CarModel      string                  `json:"carModel"`
	CarYear       string                  `json:"carYear"`
	LicensePlate  string                  `json:"licensePlate"`
	CreatedAt     time.Time               `json:"createdAt"`
	Status        domain.InspectionStatus `json:"status"`
	OverallRating *float64                `json:"overallRating,omitempty"`
	Categories    []CategorySummary       `json:"categories"`
	Images        []CategoryImages        `json:"images"`
}

// CategorySummary tallies one category's touched items. Only items recorded
// in the inspection are counted; unvisited items contribute nothing.
type CategorySummary struct {
	CategoryID      catalog.ID   `json:"categoryId"`
	CategoryName    string       `json:"categoryName"`
	WorkingCount    int          `json:"workingCount"`
	NotWorkingCount int          `json:"notWorkingCount"`
	NACount         int          `json:"naCount"`
	AverageRating   *float64     `json:"averageRating,omitempty"`
	Items           []ItemDetail `json:"items"`
}

// ItemDetail is one touched item's row in the detailed report, in catalog
// item order.
type ItemDetail struct {
	Name   string            `json:"name"`
	Status domain.ItemStatus `json:"status"`
	Rating *int              `json:"rating,omitempty"`
	Notes  string            `json:"notes,omitempty"`
}

// CategoryImages groups the image references of one category's items.
// Categories and items without images are omitted entirely.
type CategoryImages struct {
	CategoryID   catalog.ID   `json:"categoryId"`
	CategoryName string       `json:"categoryName"`
	Items        []ItemImages `json:"items"`
}

type ItemImages struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

// Summarize derives the report view for insp. Categories appear in catalog
// order; a category absent from the record, or present but empty, appears in
// no section of the view. The record is not modified.
func Summarize(insp *domain.Inspection) *ReportView {
	view := &ReportView{
		ID:            insp.ID,
		CarModel:      insp.CarModel,
		CarYear:       insp.CarYear,
		LicensePlate:  insp.LicensePlate,
		CreatedAt:     insp.CreatedAt,
		Status:        insp.Status,
		OverallRating: insp.OverallRating,
		Categories:    []CategorySummary{},
		Images:        []CategoryImages{},
	}

	for _, cat := range catalog.Categories() {
		cd, ok := insp.Categories[cat.ID]
		if !ok || len(cd) == 0 {
			continue
		}
		view.Categories = append(view.Categories, summarizeCategory(cat, cd))
		if imgs, ok := collectImages(cat, cd); ok {
			view.Images = append(view.Images, imgs)
		}
	}
	return view
}

func summarizeCategory(cat catalog.Category, cd domain.CategoryData) CategorySummary {
	sum := CategorySummary{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Items:        []ItemDetail{},
	}

	ratingSum, rated := 0, 0
	for _, st := range cd {
		switch st.Status {
		case domain.StatusWorking:
			sum.WorkingCount++
		case domain.StatusNotWorking:
			sum.NotWorkingCount++
		case domain.StatusNotApplicable:
			sum.NACount++
		}
		if st.Rating != nil {
			ratingSum += *st.Rating
			rated++
		}
	}
	if rated > 0 {
		avg := round1(float64(ratingSum) / float64(rated))
		sum.AverageRating = &avg
	}

	// Detail rows follow catalog item order, not map order.
	for _, name := range cat.Items {
		st, ok := cd[name]
		if !ok {
			continue
		}
		sum.Items = append(sum.Items, ItemDetail{
			Name:   name,
			Status: st.Status,
			Rating: st.Rating,
			Notes:  st.Notes,
		})
	}
	return sum
}

func collectImages(cat catalog.Category, cd domain.CategoryData) (CategoryImages, bool) {
	group := CategoryImages{CategoryID: cat.ID, CategoryName: cat.Name}
	for _, name := range cat.Items {
		st, ok := cd[name]
		if !ok || len(st.Images) == 0 {
			continue
		}
		group.Items = append(group.Items, ItemImages{Name: name, Images: st.Images})
	}
	return group, len(group.Items) > 0
}
