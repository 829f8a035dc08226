package models

// TMDBListResponse is the shape of /movie/popular and /tv/popular pages.
type TMDBListResponse struct {
	Page         int         `json:"page"`
	Results      []TMDBMedia `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type TMDBMedia struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"` // movies
	Name         string  `json:"name"`  // tv shows
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int   `json:"genre_ids"`
}

// DisplayTitle returns the title field appropriate to the media type,
// movies use "title" while tv shows use "name".
func (m TMDBMedia) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// TMDBDetail is a detail lookup with credits and videos appended.
type TMDBDetail struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Name        string      `json:"name"`
	Overview    string      `json:"overview"`
	PosterPath  string      `json:"poster_path"`
	VoteAverage float64     `json:"vote_average"`
	Credits     TMDBCredits `json:"credits"`
	Videos      TMDBVideos  `json:"videos"`
}

type TMDBCredits struct {
	Cast []TMDBCastMember `json:"cast"`
	Crew []TMDBCrewMember `json:"crew"`
}

type TMDBCastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type TMDBCrewMember struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

type TMDBVideos struct {
	Results []TMDBVideo `json:"results"`
}

type TMDBVideo struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}
