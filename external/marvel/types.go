package marvel

// Wire shapes of the Marvel developer API. Every response carries the same
// outer envelope; only data.results varies by resource.

type apiEnvelope[T any] struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Offset  int `json:"offset"`
		Limit   int `json:"limit"`
		Total   int `json:"total"`
		Count   int `json:"count"`
		Results []T `json:"results"`
	} `json:"data"`
}

type characterResult struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   struct {
		Path      string `json:"path"`
		Extension string `json:"extension"`
	} `json:"thumbnail"`
	Series struct {
		Available int `json:"available"`
		Items     []struct {
			ResourceURI string `json:"resourceURI"`
			Name        string `json:"name"`
		} `json:"items"`
	} `json:"series"`
}

type storyResult struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}
