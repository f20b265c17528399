package record

import (
	"testing"

	"VinylFM/model"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	inventory := []*model.Record{
		{Artist: "Pink Floyd", AlbumName: "The Wall", Genre: "Rock"},
		{Artist: "Miles Davis", AlbumName: "Kind of Blue", Genre: "Jazz"},
		{Artist: "Daft Punk", AlbumName: "Discovery", Genre: "Electronic"},
	}

	t.Run("no filters returns everything", func(t *testing.T) {
		assert.Len(t, Filter(inventory, nil, ""), 3)
	})

	t.Run("genre membership", func(t *testing.T) {
		got := Filter(inventory, []string{"Rock", "Jazz"}, "")
		assert.Len(t, got, 2)
		assert.Equal(t, "The Wall", got[0].AlbumName)
		assert.Equal(t, "Kind of Blue", got[1].AlbumName)
	})

	t.Run("query matches album case-insensitively", func(t *testing.T) {
		got := Filter(inventory, nil, "wall")
		assert.Len(t, got, 1)
		assert.Equal(t, "The Wall", got[0].AlbumName)
	})

	t.Run("query matches artist too", func(t *testing.T) {
		got := Filter(inventory, nil, "miles")
		assert.Len(t, got, 1)
		assert.Equal(t, "Kind of Blue", got[0].AlbumName)
	})

	t.Run("genre and query combine", func(t *testing.T) {
		got := Filter(inventory, []string{"Jazz"}, "wall")
		assert.Empty(t, got)
	})

	t.Run("blank genre entries are ignored", func(t *testing.T) {
		got := Filter(inventory, []string{" ", ""}, "")
		assert.Len(t, got, 3)
	})
}
