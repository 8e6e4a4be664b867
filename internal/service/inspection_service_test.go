package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carspect/internal/db"
	"carspect/internal/domain"
	"carspect/internal/inspect"
	"carspect/internal/store"
)

// stubImageStore is a minimal in-memory imagestore.Store for tests.
type stubImageStore struct {
	mu      sync.Mutex
	saved   map[string][]byte
	counter int
	saveErr error
}

func newStubImageStore() *stubImageStore {
	return &stubImageStore{saved: make(map[string][]byte)}
}

func (s *stubImageStore) Save(_ context.Context, prefix, _ string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, _ := io.ReadAll(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	key := fmt.Sprintf("%s_%d.jpg", prefix, s.counter)
	s.saved[key] = data
	return key, nil
}

func (s *stubImageStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.saved[key]
	if !ok {
		return nil, "", errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), "image/jpeg", nil
}

func (s *stubImageStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, key)
	return nil
}

func newTestService(t *testing.T) (*InspectionService, *stubImageStore) {
	t.Helper()
	database, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	images := newStubImageStore()
	svc := NewInspectionService(store.NewInspectionStore(database), images, slog.Default())
	return svc, images
}

func TestCreateInspection(t *testing.T) {
	svc, _ := newTestService(t)

	insp, err := svc.CreateInspection(context.Background(), "Toyota Camry", "2020", "ABC-123")
	require.NoError(t, err)
	assert.NotEmpty(t, insp.ID)
	assert.Equal(t, domain.InspectionPending, insp.Status)
	assert.Empty(t, insp.Categories)

	got, err := svc.GetInspection(context.Background(), insp.ID)
	require.NoError(t, err)
	assert.Equal(t, insp.ID, got.ID)
}

func TestGetInspectionNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetInspection(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListInspectionsByStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateInspection(ctx, "Toyota Camry", "2020", "ABC-123")
	require.NoError(t, err)
	_, err = svc.CreateInspection(ctx, "Honda Civic", "2019", "XYZ-789")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, a.ID, domain.InspectionCompleted)
	require.NoError(t, err)

	all, err := svc.ListInspections(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	completed, err := svc.ListInspections(ctx, domain.InspectionCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, a.ID, completed[0].ID)

	_, err = svc.ListInspections(ctx, "done")
	assert.ErrorIs(t, err, ErrInvalidInspectionStatus)
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	insp, err := svc.CreateInspection(ctx, "Toyota Camry", "2020", "ABC-123")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, insp.ID, domain.InspectionInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.InspectionInProgress, updated.Status)

	got, err := svc.GetInspection(ctx, insp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InspectionInProgress, got.Status)

	_, err = svc.UpdateStatus(ctx, insp.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidInspectionStatus)
}

func TestEditItemPersistsAndRecomputes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	insp, err := svc.CreateInspection(ctx, "Toyota Camry", "2020", "ABC-123")
	require.NoError(t, err)

	_, err = svc.EditItem(ctx, insp.ID, "body-paint", "Hood", inspect.SetStatus{Status: domain.StatusNotWorking})
	require.NoError(t, err)

	_, err = svc.EditItem(ctx, insp.ID, "body-paint", "Hood", inspect.SetRating{Rating: 4})
	require.NoError(t, err)

	updated, err := svc.EditItem(ctx, insp.ID, "tyres", "Front Left Tyre", inspect.SetRating{Rating: 2})
	require.NoError(t, err)
	require.NotNil(t, updated.OverallRating)
	assert.Equal(t, 3.0, *updated.OverallRating)

	got, err := svc.GetInspection(ctx, insp.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OverallRating)
	assert.Equal(t, 3.0, *got.OverallRating)
	assert.Equal(t, domain.StatusNotWorking, got.Categories["body-paint"]["Hood"].Status)
}

func TestEditItemValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	insp, err := svc.CreateInspection(ctx, "Toyota Camry", "2020", "ABC-123")
	require.NoError(t, err)

	_, err = svc.EditItem(ctx, "missing", "tyres", "Spare Tyre", inspect.SetRating{Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.EditItem(ctx, insp.ID, "sunroof", "Glass", inspect.SetRating{Rating: 3})
	assert.ErrorIs(t, err, inspect.ErrUnknownCategory)

	_, err = svc.EditItem(ctx, insp.ID, "tyres", "Spare Tyre", inspect.SetRating{Rating: 9})
	assert.ErrorIs(t, err, inspect.ErrRatingOutOfRange)
}

func TestAttachImageAppends(t *testing.T) {
	svc, images := newTestService(t)
	ctx := context.Background()

	insp, err := svc.CreateInspection(ctx, "Honda Civic", "2019", "XYZ-789")
	require.NoError(t, err)

	_, key1, err := svc.AttachImage(ctx, insp.ID, "body-paint", "Hood", "image/jpeg", strings.NewReader("one"))
	require.NoError(t, err)
	updated, key2, err := svc.AttachImage(ctx, insp.ID, "body-paint", "Hood", "image/jpeg", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
	assert.Equal(t, []string{key1, key2}, updated.Categories["body-paint"]["Hood"].Images)

	reader, _, err := images.Get(ctx, key2)
	require.NoError(t, err)
	data, _ := io.ReadAll(reader)
	assert.Equal(t, "two", string(data))
}

func TestAttachImageUnknownItemRollsBackFile(t *testing.T) {
	svc, images := newTestService(t)
	ctx := context.Background()

	insp, err := svc.CreateInspection(ctx, "Honda Civic", "2019", "XYZ-789")
	require.NoError(t, err)

	_, _, err = svc.AttachImage(ctx, insp.ID, "tyres", "Windshield", "image/jpeg", strings.NewReader("x"))
	assert.ErrorIs(t, err, inspect.ErrUnknownItem)
	assert.Empty(t, images.saved, "saved file must be removed when the edit is rejected")
}

func TestRemoveImage(t *testing.T) {
	svc, images := newTestService(t)
	ctx := context.Background()

	insp, err := svc.CreateInspection(ctx, "Honda Civic", "2019", "XYZ-789")
	require.NoError(t, err)

	_, key1, err := svc.AttachImage(ctx, insp.ID, "body-paint", "Hood", "image/jpeg", strings.NewReader("one"))
	require.NoError(t, err)
	_, key2, err := svc.AttachImage(ctx, insp.ID, "body-paint", "Hood", "image/jpeg", strings.NewReader("two"))
	require.NoError(t, err)

	updated, err := svc.RemoveImage(ctx, insp.ID, "body-paint", "Hood", key1)
	require.NoError(t, err)
	assert.Equal(t, []string{key2}, updated.Categories["body-paint"]["Hood"].Images)

	_, _, err = images.Get(ctx, key1)
	assert.Error(t, err, "stored file deleted with the reference")

	_, err = svc.RemoveImage(ctx, insp.ID, "body-paint", "Hood", key1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReport(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	insp, err := svc.CreateInspection(ctx, "Ford Mustang", "2021", "DEF-456")
	require.NoError(t, err)

	_, err = svc.EditItem(ctx, insp.ID, "body-paint", "Hood", inspect.SetRating{Rating: 4})
	require.NoError(t, err)
	_, err = svc.EditItem(ctx, insp.ID, "body-paint", "Roof", inspect.SetRating{Rating: 5})
	require.NoError(t, err)

	report, err := svc.Report(ctx, insp.ID)
	require.NoError(t, err)
	require.NotNil(t, report.OverallRating)
	assert.Equal(t, 4.5, *report.OverallRating)
	require.Len(t, report.Categories, 1)
	assert.Equal(t, 2, report.Categories[0].WorkingCount)

	_, err = svc.Report(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteInspectionCleansUpImages(t *testing.T) {
	svc, images := newTestService(t)
	ctx := context.Background()

	insp, err := svc.CreateInspection(ctx, "Ford Mustang", "2021", "DEF-456")
	require.NoError(t, err)

	_, key, err := svc.AttachImage(ctx, insp.ID, "car-pictures", "Front View", "image/jpeg", strings.NewReader("front"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInspection(ctx, insp.ID))

	_, err = svc.GetInspection(ctx, insp.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = images.Get(ctx, key)
	assert.Error(t, err)

	assert.ErrorIs(t, svc.DeleteInspection(ctx, insp.ID), ErrNotFound)
}
