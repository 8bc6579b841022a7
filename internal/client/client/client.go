package client

import (
	"context"

	"github.com/dmitrijs2005/moviekeeper/internal/client/models"
)

// Client is the remote movie catalog. Every call returns either a payload or
// a classified *Error, never both.
type Client interface {
	FetchTopRated(ctx context.Context, page int) (*models.MoviePage, error)
	FetchDetail(ctx context.Context, id int64) (*models.Movie, error)
	Search(ctx context.Context, query string, page int) (*models.MoviePage, error)
}
