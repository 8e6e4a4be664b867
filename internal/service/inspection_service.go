package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"carspect/internal/catalog"
	"carspect/internal/domain"
	"carspect/internal/imagestore"
	"carspect/internal/inspect"
)

// ErrNotFound is returned when an inspection id is absent from storage.
var ErrNotFound = errors.New("inspection not found")

// ErrInvalidInspectionStatus is returned for an unrecognized lifecycle token.
var ErrInvalidInspectionStatus = errors.New("invalid inspection status")

// recordRepository is the subset of store.InspectionStore that
// InspectionService requires.
type recordRepository interface {
	Put(ctx context.Context, insp *domain.Inspection) error
	Get(ctx context.Context, id string) (*domain.Inspection, error)
	List(ctx context.Context) ([]*domain.Inspection, error)
	ListByStatus(ctx context.Context, status domain.InspectionStatus) ([]*domain.Inspection, error)
	Delete(ctx context.Context, id string) error
}

type InspectionService struct {
	records recordRepository
	images  imagestore.Store
	logger  *slog.Logger
}

func NewInspectionService(records recordRepository, images imagestore.Store, logger *slog.Logger) *InspectionService {
	return &InspectionService{
		records: records,
		images:  images,
		logger:  logger,
	}
}

func (s *InspectionService) CreateInspection(ctx context.Context, carModel, carYear, licensePlate string) (*domain.Inspection, error) {
	insp := domain.NewInspection(carModel, carYear, licensePlate)
	if err := s.records.Put(ctx, insp); err != nil {
		return nil, fmt.Errorf("failed to save inspection: %w", err)
	}
	s.logger.Info("inspection created", "inspection_id", insp.ID, "car_model", carModel)
	return insp, nil
}

func (s *InspectionService) GetInspection(ctx context.Context, id string) (*domain.Inspection, error) {
	insp, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inspection: %w", err)
	}
	if insp == nil {
		return nil, ErrNotFound
	}
	return insp, nil
}

// ListInspections returns all records, or only those with the given status
// when one is supplied.
func (s *InspectionService) ListInspections(ctx context.Context, status domain.InspectionStatus) ([]*domain.Inspection, error) {
	if status == "" {
		return s.records.List(ctx)
	}
	if !status.IsValid() {
		return nil, ErrInvalidInspectionStatus
	}
	return s.records.ListByStatus(ctx, status)
}

func (s *InspectionService) DeleteInspection(ctx context.Context, id string) error {
	insp, err := s.records.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get inspection: %w", err)
	}
	if insp == nil {
		return ErrNotFound
	}

	if err := s.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inspection: %w", err)
	}

	// Stored image files are cleaned up best-effort; the record is already gone.
	for _, cd := range insp.Categories {
		for _, st := range cd {
			for _, key := range st.Images {
				if err := s.images.Delete(ctx, key); err != nil {
					s.logger.Error("failed to delete image file", "storage_key", key, "error", err)
				}
			}
		}
	}
	s.logger.Info("inspection deleted", "inspection_id", id)
	return nil
}

// UpdateStatus sets the inspection's lifecycle status. Any of the three
// states can be selected directly; status changes are independent of item
// edits.
func (s *InspectionService) UpdateStatus(ctx context.Context, id string, status domain.InspectionStatus) (*domain.Inspection, error) {
	if !status.IsValid() {
		return nil, ErrInvalidInspectionStatus
	}

	insp, err := s.GetInspection(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *insp
	updated.Status = status
	if err := s.records.Put(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save inspection: %w", err)
	}
	s.logger.Info("inspection status updated", "inspection_id", id, "status", status)
	return &updated, nil
}

// EditItem applies one field-level edit to one item and persists the
// resulting record. The read-modify-write runs within this call; the stored
// record is only ever replaced whole.
func (s *InspectionService) EditItem(ctx context.Context, id string, categoryID catalog.ID, itemName string, edit inspect.Edit) (*domain.Inspection, error) {
	insp, err := s.GetInspection(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := inspect.ApplyEdit(insp, categoryID, itemName, edit)
	if err != nil {
		return nil, err
	}

	if err := s.records.Put(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save inspection: %w", err)
	}
	s.logger.Debug("item edited", "inspection_id", id, "category", categoryID, "item", itemName)
	return updated, nil
}

// AttachImage stores the image bytes and appends the resulting reference to
// the item's image list. Appending (rather than replacing the list) means
// several uploads for the same item can land in any order without losing one
// another; references end up in completion order.
func (s *InspectionService) AttachImage(ctx context.Context, id string, categoryID catalog.ID, itemName, mimeType string, r io.Reader) (*domain.Inspection, string, error) {
	insp, err := s.GetInspection(ctx, id)
	if err != nil {
		return nil, "", err
	}

	key, err := s.images.Save(ctx, fmt.Sprintf("insp_%s", id), mimeType, r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to save image: %w", err)
	}

	current := insp.Item(categoryID, itemName)
	updated, err := inspect.ApplyEdit(insp, categoryID, itemName, inspect.SetImages{
		Images: append(append([]string(nil), current.Images...), key),
	})
	if err != nil {
		if derr := s.images.Delete(ctx, key); derr != nil {
			s.logger.Error("failed to roll back image file", "storage_key", key, "error", derr)
		}
		return nil, "", err
	}

	if err := s.records.Put(ctx, updated); err != nil {
		if derr := s.images.Delete(ctx, key); derr != nil {
			s.logger.Error("failed to roll back image file", "storage_key", key, "error", derr)
		}
		return nil, "", fmt.Errorf("failed to save inspection: %w", err)
	}

	s.logger.Info("image attached", "inspection_id", id, "category", categoryID, "item", itemName, "storage_key", key)
	return updated, key, nil
}

// RemoveImage drops the reference from the item's image list and deletes the
// stored file.
func (s *InspectionService) RemoveImage(ctx context.Context, id string, categoryID catalog.ID, itemName, key string) (*domain.Inspection, error) {
	insp, err := s.GetInspection(ctx, id)
	if err != nil {
		return nil, err
	}

	current := insp.Item(categoryID, itemName)
	remaining := make([]string, 0, len(current.Images))
	found := false
	for _, ref := range current.Images {
		if ref == key && !found {
			found = true
			continue
		}
		remaining = append(remaining, ref)
	}
	if !found {
		return nil, ErrNotFound
	}

	updated, err := inspect.ApplyEdit(insp, categoryID, itemName, inspect.SetImages{Images: remaining})
	if err != nil {
		return nil, err
	}

	if err := s.records.Put(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save inspection: %w", err)
	}

	if err := s.images.Delete(ctx, key); err != nil {
		s.logger.Error("failed to delete image file", "storage_key", key, "error", err)
	}
	return updated, nil
}

// Report builds the read-only summary view of a stored record.
func (s *InspectionService) Report(ctx context.Context, id string) (*inspect.ReportView, error) {
	insp, err := s.GetInspection(ctx, id)
	if err != nil {
		return nil, err
	}
	return inspect.Summarize(insp), nil
}

// GetImage streams a stored image by its opaque reference.
func (s *InspectionService) GetImage(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return s.images.Get(ctx, key)
}
