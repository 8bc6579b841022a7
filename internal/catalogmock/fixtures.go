package catalogmock

import "github.com/dmitrijs2005/moviekeeper/internal/client/models"

func str(s string) *string { return &s }

// Fixtures returns twelve movies, enough to exercise list truncation.
// Ids 424 and 129 carry no poster and no release date respectively.
func Fixtures() []models.Movie {
	drama := models.Genre{ID: 18, Name: "Drama"}
	crime := models.Genre{ID: 80, Name: "Crime"}
	animation := models.Genre{ID: 16, Name: "Animation"}
	war := models.Genre{ID: 10752, Name: "War"}

	return []models.Movie{
		{ID: 278, Title: "The Shawshank Redemption", Overview: "Two imprisoned men bond over a number of years.", ReleaseDate: "1994-09-23", VoteAverage: 8.7, PosterPath: str("/shawshank.jpg"), BackdropPath: str("/shawshank-bg.jpg"), Runtime: 142, Tagline: "Fear can hold you prisoner. Hope can set you free.", Genres: []models.Genre{drama, crime}},
		{ID: 238, Title: "The Godfather", Overview: "The aging patriarch of an organized crime dynasty transfers control to his son.", ReleaseDate: "1972-03-14", VoteAverage: 8.7, PosterPath: str("/godfather.jpg"), BackdropPath: str("/godfather-bg.jpg"), Runtime: 175, Tagline: "An offer you can't refuse.", Genres: []models.Genre{drama, crime}},
		{ID: 240, Title: "The Godfather Part II", Overview: "The early life and career of Vito Corleone.", ReleaseDate: "1974-12-20", VoteAverage: 8.6, PosterPath: str("/godfather2.jpg"), BackdropPath: str("/godfather2-bg.jpg"), Runtime: 202, Genres: []models.Genre{drama, crime}},
		{ID: 424, Title: "Schindler's List", Overview: "The true story of how businessman Oskar Schindler saved over a thousand Jewish lives.", ReleaseDate: "1993-12-15", VoteAverage: 8.6, PosterPath: nil, BackdropPath: str("/schindler-bg.jpg"), Runtime: 195, Genres: []models.Genre{drama, war}},
		{ID: 389, Title: "12 Angry Men", Overview: "The defense and the prosecution have rested.", ReleaseDate: "1957-04-10", VoteAverage: 8.5, PosterPath: str("/12angrymen.jpg"), Runtime: 97, Genres: []models.Genre{drama}},
		{ID: 129, Title: "Spirited Away", Overview: "A young girl wanders into a world ruled by gods, witches and spirits.", ReleaseDate: "", VoteAverage: 8.5, PosterPath: str("/spirited.jpg"), BackdropPath: str("/spirited-bg.jpg"), Runtime: 125, Genres: []models.Genre{animation}},
		{ID: 19404, Title: "Dilwale Dulhania Le Jayenge", Overview: "Raj is a rich, carefree, happy-go-lucky second generation NRI.", ReleaseDate: "1995-10-20", VoteAverage: 8.5, PosterPath: str("/ddlj.jpg"), Runtime: 190, Genres: []models.Genre{drama}},
		{ID: 155, Title: "The Dark Knight", Overview: "Batman raises the stakes in his war on crime.", ReleaseDate: "2008-07-16", VoteAverage: 8.5, PosterPath: str("/darkknight.jpg"), BackdropPath: str("/darkknight-bg.jpg"), Runtime: 152, Tagline: "Why so serious?", Genres: []models.Genre{drama, crime}},
		{ID: 496243, Title: "Parasite", Overview: "All unemployed, Ki-taek's family takes peculiar interest in the wealthy Parks.", ReleaseDate: "2019-05-30", VoteAverage: 8.5, PosterPath: str("/parasite.jpg"), Runtime: 133, Genres: []models.Genre{drama}},
		{ID: 497, Title: "The Green Mile", Overview: "A supernatural tale set on death row.", ReleaseDate: "1999-12-10", VoteAverage: 8.5, PosterPath: str("/greenmile.jpg"), Runtime: 189, Genres: []models.Genre{drama, crime}},
		{ID: 680, Title: "Pulp Fiction", Overview: "A burger-loving hit man, his philosophical partner and a washed-up boxer converge.", ReleaseDate: "1994-09-10", VoteAverage: 8.5, PosterPath: str("/pulpfiction.jpg"), Runtime: 154, Genres: []models.Genre{crime}},
		{ID: 372058, Title: "Your Name.", Overview: "High schoolers Mitsuha and Taki are complete strangers living separate lives.", ReleaseDate: "2016-08-26", VoteAverage: 8.4, PosterPath: str("/yourname.jpg"), Runtime: 106, Genres: []models.Genre{animation, drama}},
	}
}
