package quran

// SearchState describes what a search page shows.
type SearchState string

const (
	NoQuery   SearchState = "no_query"
	NoResults SearchState = "no_results"
	Found     SearchState = "found"
)

// SearchResult is the outcome of Search.
type SearchResult struct {
	Query   string      `json:"query"`
	State   SearchState `json:"state"`
	Results []Match     `json:"results"`
}

// Search looks query up as an exact index key, such as "البقرة:255".
// The query is used as given; surrounding spaces make it a different key.
func Search(ix *Index, query string) SearchResult {
	res := SearchResult{Query: query, State: NoQuery, Results: []Match{}}
	if query == "" {
		return res
	}
	if matches, ok := ix.Get(query); ok && len(matches) > 0 {
		res.State = Found
		res.Results = matches
		return res
	}
	res.State = NoResults
	return res
}
