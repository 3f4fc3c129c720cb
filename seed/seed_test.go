package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stem-inspires/models"
)

type memory struct {
	items   []models.School
	deleted int
	failAt  int
}

func (m *memory) DeleteAll(context.Context) (int64, error) {
	n := len(m.items)
	m.deleted += n
	m.items = nil
	return int64(n), nil
}

func (m *memory) Create(_ context.Context, s *models.School) error {
	if m.failAt > 0 && len(m.items)+1 == m.failAt {
		return errors.New("write failed")
	}
	m.items = append(m.items, *s)
	return nil
}

func TestChampionYearsMatchSeasons(t *testing.T) {
	for _, c := range Champions {
		year, ok := models.YearFromSeason(c.Season)
		require.True(t, ok, c.Season)
		assert.Equal(t, c.Year, year, c.Title)
	}
}

func TestReplace(t *testing.T) {
	m := &memory{items: []models.School{{Name: "stale"}}}

	n, err := replace[models.School](context.Background(), m, Schools, "schools")
	require.NoError(t, err)
	assert.Equal(t, len(Schools), n)
	assert.Equal(t, 1, m.deleted)
	assert.Equal(t, Schools[0].Name, m.items[0].Name)

	// seed values are copied, never mutated
	assert.True(t, Schools[0].ID.IsZero())

	m = &memory{failAt: 2}
	n, err = replace[models.School](context.Background(), m, Schools, "schools")
	assert.Error(t, err)
	assert.Equal(t, 1, n)
}
