package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carspect/internal/catalog"
)

func TestNewInspection(t *testing.T) {
	insp := NewInspection("Toyota Camry", "2020", "ABC-123")

	assert.NotEmpty(t, insp.ID)
	assert.Equal(t, "Toyota Camry", insp.CarModel)
	assert.Equal(t, InspectionPending, insp.Status)
	assert.NotNil(t, insp.Categories)
	assert.Empty(t, insp.Categories)
	assert.Nil(t, insp.OverallRating)
	assert.False(t, insp.CreatedAt.IsZero())

	other := NewInspection("Toyota Camry", "2020", "ABC-123")
	assert.NotEqual(t, insp.ID, other.ID)
}

func TestItemDefaulting(t *testing.T) {
	insp := NewInspection("Honda Civic", "2019", "XYZ-789")

	st := insp.Item("tyres", "Spare Tyre")
	assert.Equal(t, StatusWorking, st.Status)
	assert.NotNil(t, st.Images)
	assert.Empty(t, st.Images)
	assert.Nil(t, st.Rating)
	assert.Empty(t, st.Notes)
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, StatusWorking.IsValid())
	assert.True(t, StatusNotWorking.IsValid())
	assert.True(t, StatusNotApplicable.IsValid())
	assert.False(t, ItemStatus("broken").IsValid())

	assert.True(t, InspectionPending.IsValid())
	assert.True(t, InspectionInProgress.IsValid())
	assert.True(t, InspectionCompleted.IsValid())
	assert.False(t, InspectionStatus("done").IsValid())
}

// Stored records from earlier versions of the app use these exact tokens;
// the encoding must not drift.
func TestWireFormat(t *testing.T) {
	rating := 4
	overall := 4.0
	insp := NewInspection("Ford Mustang", "2021", "DEF-456")
	insp.Status = InspectionInProgress
	insp.OverallRating = &overall
	insp.Categories[catalog.ID("body-paint")] = CategoryData{
		"Hood": ItemState{
			Status: StatusNotWorking,
			Images: []string{"img_1.jpg"},
			Notes:  "deep scratch",
			Rating: &rating,
		},
	}

	data, err := json.Marshal(insp)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"status":"in-progress"`)
	assert.Contains(t, text, `"status":"not-working"`)
	assert.Contains(t, text, `"carModel":"Ford Mustang"`)
	assert.Contains(t, text, `"licensePlate":"DEF-456"`)
	assert.Contains(t, text, `"overallRating":4`)

	var decoded Inspection
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, insp.ID, decoded.ID)
	assert.Equal(t, StatusNotWorking, decoded.Categories["body-paint"]["Hood"].Status)
	require.NotNil(t, decoded.Categories["body-paint"]["Hood"].Rating)
	assert.Equal(t, 4, *decoded.Categories["body-paint"]["Hood"].Rating)
}
