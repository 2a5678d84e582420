package services

import (
	"testing"

	"gymdesk/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promo(id uint, name string, minMonths, freeMonths int, active bool) *models.Promo {
	return &models.Promo{
		ID:         id,
		Name:       name,
		MinMonths:  minMonths,
		FreeMonths: freeMonths,
		IsActive:   active,
	}
}

func TestBestPromoPicksHighestQualifyingTier(t *testing.T) {
	promos := []*models.Promo{
		promo(1, "3 months +1", 3, 1, true),
		promo(2, "6 months +2", 6, 2, true),
	}

	best := BestPromo(promos, 6)
	require.NotNil(t, best)
	assert.Equal(t, "6 months +2", best.Name)

	best = BestPromo(promos, 4)
	require.NotNil(t, best)
	assert.Equal(t, "3 months +1", best.Name)

	assert.Nil(t, BestPromo(promos, 2))
}

func TestBestPromoIgnoresInactive(t *testing.T) {
	promos := []*models.Promo{
		promo(1, "retired", 3, 5, false),
		promo(2, "current", 3, 1, true),
	}

	best := BestPromo(promos, 12)
	require.NotNil(t, best)
	assert.Equal(t, "current", best.Name)
}

func TestBestPromoTieBreaks(t *testing.T) {
	// Same tier, different bonus: the larger bonus wins.
	promos := []*models.Promo{
		promo(1, "small", 6, 1, true),
		promo(2, "large", 6, 3, true),
	}
	best := BestPromo(promos, 6)
	require.NotNil(t, best)
	assert.Equal(t, "large", best.Name)

	// Identical tier and bonus: the lower ID wins.
	promos = []*models.Promo{
		promo(9, "later", 6, 2, true),
		promo(4, "earlier", 6, 2, true),
	}
	best = BestPromo(promos, 6)
	require.NotNil(t, best)
	assert.Equal(t, "earlier", best.Name)
}

func TestBestPromoEmpty(t *testing.T) {
	assert.Nil(t, BestPromo(nil, 12))
}
