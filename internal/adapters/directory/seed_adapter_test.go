package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/swasthly/healthassist/pkg/errors"
)

func TestSeedAdapter_List(t *testing.T) {
	adapter := NewSeedAdapter()

	pharmacies, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, pharmacies, 6)
	assert.Equal(t, "apollo-mg-road", pharmacies[0].ID)
}

func TestSeedAdapter_ListReturnsCopies(t *testing.T) {
	adapter := NewSeedAdapter()
	ctx := context.Background()

	first, err := adapter.List(ctx)
	require.NoError(t, err)
	first[0].Distance = 42
	first[0].Hours["Monday"] = "mutated"
	first[0].Services[0] = "mutated"

	second, err := adapter.List(ctx)
	require.NoError(t, err)
	assert.Zero(t, second[0].Distance)
	assert.Equal(t, "24 hours", second[0].Hours["Monday"])
	assert.Equal(t, "Home Delivery", second[0].Services[0])
}

func TestSeedAdapter_GetByID(t *testing.T) {
	adapter := NewSeedAdapter()

	pharmacy, err := adapter.GetByID(context.Background(), "guardian-bkc")
	require.NoError(t, err)
	assert.Equal(t, "Guardian Pharmacy", pharmacy.Name)
	assert.Empty(t, pharmacy.Website)
}

func TestSeedAdapter_GetByID_NotFound(t *testing.T) {
	adapter := NewSeedAdapter()

	_, err := adapter.GetByID(context.Background(), "no-such-pharmacy")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
