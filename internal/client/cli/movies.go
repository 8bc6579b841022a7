package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/moviekeeper/internal/client/models"
	"github.com/dmitrijs2005/moviekeeper/internal/client/services"
)

// await runs fn off the REPL goroutine and waits for its single result or
// for ctx to end.
func await[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	select {
	case res := <-services.Async(ctx, fn):
		return res.Value, res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// List prints the top-rated movies. On failure the message is printed and
// nothing else is touched.
func (a *App) List(ctx context.Context, force bool) error {
	movies, err := await(ctx, func(ctx context.Context) ([]models.Movie, error) {
		return a.movieService.LoadMovies(ctx, force)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}

	if len(movies) == 0 {
		fmt.Fprintln(a.out, "No movies.")
		return nil
	}
	for i, m := range movies {
		fmt.Fprintln(a.out, formatMovieLine(i+1, m))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		fmt.Fprintf(a.out, "Invalid movie id: %q\n", args[0])
		return fmt.Errorf("invalid movie id %q", args[0])
	}

	m, err := await(ctx, func(ctx context.Context) (models.Movie, error) {
		return a.movieService.LoadMovieDetailByID(ctx, id)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}

	fmt.Fprint(a.out, formatMovieDetail(m, a.config.ImageBaseURL))
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")

	page, err := await(ctx, func(ctx context.Context) (*models.MoviePage, error) {
		return a.movieService.Search(ctx, query, 1)
	})
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}

	if len(page.Results) == 0 {
		fmt.Fprintf(a.out, "Nothing found for %q.\n", query)
		return nil
	}
	for i, m := range page.Results {
		fmt.Fprintln(a.out, formatMovieLine(i+1, m))
	}
	if page.TotalResults > len(page.Results) {
		fmt.Fprintf(a.out, "(%d of %d results)\n", len(page.Results), page.TotalResults)
	}
	return nil
}

func formatMovieLine(n int, m models.Movie) string {
	return fmt.Sprintf("%2d. [%d] %s (%s) %.1f", n, m.ID, m.Title, m.FormattedReleaseDate(), m.VoteAverage)
}

func formatMovieDetail(m models.Movie, imageBase string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", m.Title)
	if m.Tagline != "" {
		fmt.Fprintf(&b, "  %q\n", m.Tagline)
	}
	fmt.Fprintf(&b, "Released: %s\n", m.FormattedReleaseDate())
	fmt.Fprintf(&b, "Rating:   %.1f (%s)\n", m.VoteAverage, m.RatingBand())
	if m.Runtime > 0 {
		fmt.Fprintf(&b, "Runtime:  %d min\n", m.Runtime)
	}
	if len(m.Genres) > 0 {
		names := make([]string, len(m.Genres))
		for i, g := range m.Genres {
			names[i] = g.Name
		}
		fmt.Fprintf(&b, "Genres:   %s\n", strings.Join(names, ", "))
	}
	if u := m.PosterURL(imageBase); u != "" {
		fmt.Fprintf(&b, "Poster:   %s\n", u)
	}
	if u := m.BackdropURL(imageBase); u != "" {
		fmt.Fprintf(&b, "Backdrop: %s\n", u)
	}
	if m.Overview != "" {
		fmt.Fprintf(&b, "\n%s\n", m.Overview)
	}
	return b.String()
}
