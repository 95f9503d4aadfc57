package movies

// Movie is the typed shape of a seed movie. Reads return Record instead.
type Movie struct {
	ID               int     `json:"id" dynamodbav:"id" yaml:"id" validate:"gt=0"`
	Title            string  `json:"title" dynamodbav:"title" yaml:"title" validate:"required"`
	OriginalTitle    string  `json:"original_title,omitempty" dynamodbav:"original_title,omitempty" yaml:"original_title"`
	OriginalLanguage string  `json:"original_language,omitempty" dynamodbav:"original_language,omitempty" yaml:"original_language"`
	Overview         string  `json:"overview,omitempty" dynamodbav:"overview,omitempty" yaml:"overview"`
	ReleaseDate      string  `json:"release_date,omitempty" dynamodbav:"release_date,omitempty" yaml:"release_date"`
	Adult            bool    `json:"adult" dynamodbav:"adult" yaml:"adult"`
	Popularity       float64 `json:"popularity,omitempty" dynamodbav:"popularity,omitempty" yaml:"popularity"`
	VoteAverage      float64 `json:"vote_average,omitempty" dynamodbav:"vote_average,omitempty" yaml:"vote_average"`
	VoteCount        int     `json:"vote_count,omitempty" dynamodbav:"vote_count,omitempty" yaml:"vote_count"`
	GenreIDs         []int   `json:"genre_ids,omitempty" dynamodbav:"genre_ids,omitempty" yaml:"genre_ids"`
	PosterPath       string  `json:"poster_path,omitempty" dynamodbav:"poster_path,omitempty" yaml:"poster_path"`
}
