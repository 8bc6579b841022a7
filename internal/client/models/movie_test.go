package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMovie_DecodesCatalogJSON(t *testing.T) {
	raw := `{
		"id": 278,
		"title": "The Shawshank Redemption",
		"overview": "Imprisoned in the 1940s...",
		"release_date": "1994-09-23",
		"vote_average": 8.7,
		"poster_path": "/9cqNxx0GxF0bflZmeSMuL5tnGzr.jpg",
		"backdrop_path": null,
		"runtime": 142,
		"genres": [{"id": 18, "name": "Drama"}],
		"popularity": 120.5
	}`

	var m Movie
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, int64(278), m.ID)
	assert.Equal(t, "The Shawshank Redemption", m.Title)
	assert.Equal(t, 8.7, m.VoteAverage)
	require.NotNil(t, m.PosterPath)
	assert.Nil(t, m.BackdropPath)
	assert.Equal(t, 142, m.Runtime)
	assert.Equal(t, []Genre{{ID: 18, Name: "Drama"}}, m.Genres)
}

func TestMovie_FormattedReleaseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "valid", in: "1994-09-23", want: "23 Sep 1994"},
		{name: "empty", in: "", want: "unknown"},
		{name: "garbage", in: "someday", want: "unknown"},
		{name: "wrong layout", in: "23/09/1994", want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Movie{ReleaseDate: tt.in}.FormattedReleaseDate())
		})
	}
}

func TestMovie_RatingBand(t *testing.T) {
	assert.Equal(t, "high", Movie{VoteAverage: 8.0}.RatingBand())
	assert.Equal(t, "medium", Movie{VoteAverage: 7.99}.RatingBand())
	assert.Equal(t, "medium", Movie{VoteAverage: 6.0}.RatingBand())
	assert.Equal(t, "low", Movie{VoteAverage: 5.9}.RatingBand())
}

func TestMovie_ImageURLs(t *testing.T) {
	m := Movie{PosterPath: strPtr("/p.jpg"), BackdropPath: strPtr("")}

	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", m.PosterURL("https://image.tmdb.org/t/p/w500"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", m.PosterURL("https://image.tmdb.org/t/p/w500/"))
	assert.Empty(t, m.BackdropURL("https://image.tmdb.org/t/p/w500"))
	assert.Empty(t, Movie{}.PosterURL("https://image.tmdb.org/t/p/w500"))
}

func TestTruncate(t *testing.T) {
	movies := make([]Movie, 15)
	for i := range movies {
		movies[i] = Movie{ID: int64(i + 1)}
	}

	got := Truncate(movies, MaxListSize)
	require.Len(t, got, MaxListSize)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(10), got[9].ID)

	got[0].ID = 99
	assert.Equal(t, int64(1), movies[0].ID, "Truncate must copy")

	assert.Len(t, Truncate(movies[:3], MaxListSize), 3)
	assert.Empty(t, Truncate(nil, MaxListSize))
}

func TestMovieListSnapshot_IsStale(t *testing.T) {
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := MovieListSnapshot{FetchedAt: at}

	assert.False(t, s.IsStale(at, time.Hour))
	assert.False(t, s.IsStale(at.Add(time.Hour), time.Hour))
	assert.True(t, s.IsStale(at.Add(time.Hour+time.Nanosecond), time.Hour))
}

func TestMoviePage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"empty results", `{"page":1,"results":[]}`, false},
		{"results", `{"page":1,"results":[{"id":278}]}`, false},
		{"null", `null`, true},
		{"empty object", `{}`, true},
		{"unrelated object", `{"foo":1}`, true},
		{"null results", `{"results":null}`, true},
		{"entry without id", `{"results":[{"title":"x"}]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p MoviePage
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			if tt.wantErr {
				assert.Error(t, p.Validate())
			} else {
				assert.NoError(t, p.Validate())
			}
		})
	}
}
