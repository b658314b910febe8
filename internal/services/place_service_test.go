package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinera/pkg/utils"
)

func TestListProjectPlaces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"Temple", "Market", "Castle"} {
		f.seedPlace(t, f.projectID, name)
	}
	f.seedPlace(t, uuid.New(), "Elsewhere")

	all, err := f.places.ListProjectPlaces(ctx, f.projectID, 1, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Castle", "Market", "Temple"}, []string{all[0].Name, all[1].Name, all[2].Name})

	second, err := f.places.ListProjectPlaces(ctx, f.projectID, 2, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Temple", second[0].Name)

	_, err = f.places.ListProjectPlaces(ctx, f.projectID, 0, 10)
	assert.ErrorIs(t, err, utils.ErrInvalidPage)
	_, err = f.places.ListProjectPlaces(ctx, f.projectID, 1, MaxPlacePageSize+1)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
}

func TestGetPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seedPlace(t, f.projectID, "Temple")

	place, err := f.places.GetPlace(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Temple", place.Name)
	assert.Equal(t, "sight", place.Category)

	_, err = f.places.GetPlace(ctx, uuid.New())
	assert.ErrorIs(t, err, utils.ErrPlaceNotFound)
}
