package record

import (
	"testing"
	"time"

	"VinylFM/model"

	"github.com/stretchr/testify/assert"
)

func tracks(pairs ...[2]string) []model.CatalogTrack {
	out := make([]model.CatalogTrack, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, model.CatalogTrack{Title: p[0], DurationText: p[1]})
	}
	return out
}

func TestDeriveDuration(t *testing.T) {
	t.Run("sums valid entries and floors to minutes", func(t *testing.T) {
		// 225s + 250s = 475s -> 7 minutes
		got := DeriveDuration(tracks(
			[2]string{"One", "3:45"},
			[2]string{"Two", "4:10"},
			[2]string{"Three", "bad"},
		))
		assert.Equal(t, 7, got)
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Equal(t, 0, DeriveDuration(nil))
	})

	t.Run("malformed entries contribute zero without aborting", func(t *testing.T) {
		got := DeriveDuration(tracks(
			[2]string{"A", ""},
			[2]string{"B", "4:5"},     // seconds must be two digits
			[2]string{"C", "abc"},
			[2]string{"D", "2:30"},
			[2]string{"E", "-1:30"},
			[2]string{"F", "1:30:00"},
		))
		assert.Equal(t, 2, got)
	})

	t.Run("minute runs past int range are skipped", func(t *testing.T) {
		got := DeriveDuration(tracks(
			[2]string{"Glitch", "99999999999999999999:30"},
			[2]string{"Real", "2:00"},
		))
		assert.Equal(t, 2, got)
	})

	t.Run("long minute runs are accepted", func(t *testing.T) {
		// 123*60+45 = 7425s -> 123 minutes
		assert.Equal(t, 123, DeriveDuration(tracks([2]string{"Epic", "123:45"})))
	})

	t.Run("fractional minutes are discarded, not rounded", func(t *testing.T) {
		// 59s -> 0 minutes even though it is nearly one
		assert.Equal(t, 0, DeriveDuration(tracks([2]string{"Short", "0:59"})))
	})
}

func TestDeriveTracklist(t *testing.T) {
	t.Run("joins titles in order", func(t *testing.T) {
		got := DeriveTracklist(tracks(
			[2]string{"A", "1:00"},
			[2]string{"B", "1:00"},
			[2]string{"C", "1:00"},
		))
		assert.Equal(t, "A | B | C", got)
	})

	t.Run("empty list yields empty string", func(t *testing.T) {
		assert.Equal(t, "", DeriveTracklist(nil))
	})

	t.Run("empty titles keep their position", func(t *testing.T) {
		got := DeriveTracklist(tracks(
			[2]string{"A", "1:00"},
			[2]string{"", "1:00"},
			[2]string{"C", "1:00"},
		))
		assert.Equal(t, "A |  | C", got)
	})
}

func TestParseArtistAlbum(t *testing.T) {
	t.Run("splits on first separator", func(t *testing.T) {
		artist, album := ParseArtistAlbum("Pink Floyd - The Wall")
		assert.Equal(t, "Pink Floyd", artist)
		assert.Equal(t, "The Wall", album)
	})

	t.Run("only first separator splits", func(t *testing.T) {
		artist, album := ParseArtistAlbum("Angus & Julia Stone - Down The Way - Deluxe")
		assert.Equal(t, "Angus & Julia Stone", artist)
		assert.Equal(t, "Down The Way - Deluxe", album)
	})

	t.Run("no separator defaults the artist", func(t *testing.T) {
		artist, album := ParseArtistAlbum("Unknown Title")
		assert.Equal(t, UnknownArtist, artist)
		assert.Equal(t, "Unknown Title", album)
	})
}

func TestBuildEntry(t *testing.T) {
	candidate := model.CatalogSearchResult{
		ExternalID:    42,
		Title:         "Pink Floyd - The Wall",
		Year:          "1979",
		CoverImageURL: "https://img.example/wall.jpg",
		Genre:         "Rock",
	}
	detail := &model.ReleaseDetail{
		Tracks: tracks(
			[2]string{"In The Flesh?", "3:20"},
			[2]string{"The Thin Ice", "2:27"},
		),
	}

	t.Run("derived fields", func(t *testing.T) {
		entry, err := BuildEntry(candidate, detail, Overrides{})
		assert.NoError(t, err)
		assert.Equal(t, "Pink Floyd", entry.Artist)
		assert.Equal(t, "The Wall", entry.AlbumName)
		assert.Equal(t, "Rock", entry.Genre)
		assert.Equal(t, "1979", entry.Year)
		assert.Equal(t, "https://img.example/wall.jpg", entry.CoverURL)
		assert.Equal(t, model.ConditionUsed, entry.Condition)
		assert.Equal(t, 5, entry.DurationMinutes) // 200+147 = 347s
		assert.Equal(t, "In The Flesh? | The Thin Ice", entry.Tracklist)
		assert.InDelta(t, time.Now().Unix(), entry.ID, 2)
	})

	t.Run("overrides win over derived values", func(t *testing.T) {
		mins := 90
		tl := "Side A | Side B"
		entry, err := BuildEntry(candidate, detail, Overrides{
			Artist:          "The Pink Floyd",
			Genre:           "Prog Rock",
			Condition:       model.ConditionMint,
			DurationMinutes: &mins,
			Tracklist:       &tl,
		})
		assert.NoError(t, err)
		assert.Equal(t, "The Pink Floyd", entry.Artist)
		assert.Equal(t, "The Wall", entry.AlbumName) // not overridden
		assert.Equal(t, "Prog Rock", entry.Genre)
		assert.Equal(t, model.ConditionMint, entry.Condition)
		assert.Equal(t, 90, entry.DurationMinutes)
		assert.Equal(t, "Side A | Side B", entry.Tracklist)
	})

	t.Run("missing genre falls back to default", func(t *testing.T) {
		c := candidate
		c.Genre = ""
		entry, err := BuildEntry(c, detail, Overrides{})
		assert.NoError(t, err)
		assert.Equal(t, UnknownGenre, entry.Genre)
	})

	t.Run("nil detail builds an empty tracklist", func(t *testing.T) {
		entry, err := BuildEntry(candidate, nil, Overrides{})
		assert.NoError(t, err)
		assert.Equal(t, 0, entry.DurationMinutes)
		assert.Equal(t, "", entry.Tracklist)
	})

	t.Run("blank candidate title synthesizes no artist", func(t *testing.T) {
		_, err := BuildEntry(model.CatalogSearchResult{}, nil, Overrides{AlbumName: "Discovery"})
		assert.True(t, IsValidation(err))
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "artist", ve.Field)
	})

	t.Run("empty artist fails validation", func(t *testing.T) {
		c := model.CatalogSearchResult{Title: ""}
		_, err := BuildEntry(c, nil, Overrides{AlbumName: "Some Album", Artist: "   "})
		assert.Error(t, err)
		assert.True(t, IsValidation(err))
		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
		assert.Equal(t, "artist", ve.Field)
	})

	t.Run("empty album fails validation", func(t *testing.T) {
		c := model.CatalogSearchResult{Title: ""}
		_, err := BuildEntry(c, nil, Overrides{Artist: "Someone"})
		assert.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("unknown condition fails validation", func(t *testing.T) {
		_, err := BuildEntry(candidate, detail, Overrides{Condition: "Shredded"})
		assert.True(t, IsValidation(err))
	})
}
