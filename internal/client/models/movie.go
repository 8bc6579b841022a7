// Package models defines the data the movie client moves between the remote
// catalog, the local cache and the presentation layer.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxListSize is the number of top-rated movies the client keeps and shows.
const MaxListSize = 10

const (
	releaseDateLayout = "2006-01-02"
	displayDateLayout = "02 Jan 2006"
	unknownDate       = "unknown"
)

// Genre is a named category attached to a movie detail.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie is a catalog entry. List responses fill only the summary fields;
// detail responses add Runtime, Tagline and Genres. ID is the identity used
// for equality and as cache key.
type Movie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`

	Runtime int     `json:"runtime,omitempty"`
	Tagline string  `json:"tagline,omitempty"`
	Genres  []Genre `json:"genres,omitempty"`
}

// MoviePage is one page of a top-rated or search listing.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Validate reports a page that decoded without a results array or with an
// entry lacking its id. It has a pointer receiver so it can be bound before
// the page is filled in.
func (p *MoviePage) Validate() error {
	if p.Results == nil {
		return errors.New("page has no results")
	}
	for i, m := range p.Results {
		if m.ID == 0 {
			return fmt.Errorf("result %d has no id", i)
		}
	}
	return nil
}

// Released returns the parsed release date and whether it was parseable.
func (m Movie) Released() (time.Time, bool) {
	t, err := time.Parse(releaseDateLayout, strings.TrimSpace(m.ReleaseDate))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormattedReleaseDate renders the release date for display, or "unknown"
// when it is missing or malformed.
func (m Movie) FormattedReleaseDate() string {
	t, ok := m.Released()
	if !ok {
		return unknownDate
	}
	return t.Format(displayDateLayout)
}

// RatingBand classifies VoteAverage as "high" (>= 8), "medium" (>= 6) or "low".
func (m Movie) RatingBand() string {
	switch {
	case m.VoteAverage >= 8.0:
		return "high"
	case m.VoteAverage >= 6.0:
		return "medium"
	default:
		return "low"
	}
}

// PosterURL joins the image base URL with the poster path. It returns an
// empty string when the movie has no poster.
func (m Movie) PosterURL(imageBaseURL string) string {
	return imageURL(imageBaseURL, m.PosterPath)
}

// BackdropURL joins the image base URL with the backdrop path. It returns an
// empty string when the movie has no backdrop.
func (m Movie) BackdropURL(imageBaseURL string) string {
	return imageURL(imageBaseURL, m.BackdropPath)
}

func imageURL(base string, path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(*path, "/")
}

// Truncate returns a copy of at most n leading movies, preserving order.
func Truncate(movies []Movie, n int) []Movie {
	if len(movies) > n {
		movies = movies[:n]
	}
	out := make([]Movie, len(movies))
	copy(out, movies)
	return out
}
