package eodhd

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// SearchResult is one candidate symbol from the EODHD search API.
type SearchResult struct {
	Code     string
	Exchange string
	Name     string
	Currency string
}

// Search queries the EODHD symbol search API. The response is a loose
// JSON array, so fields are pulled with jsonpath rather than a rigid
// struct: the API adds fields without notice.
func Search(apiKey, query string) ([]SearchResult, error) {
	addr := fmt.Sprintf("https://eodhd.com/api/search/%s?api_token=%s&fmt=json", query, apiKey)

	var jobj any
	if err := jwget(newDailyCachingClient(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("could not search %q: %w", query, err)
	}

	str := func(path string, i int) string {
		jval, err := jsonpath.Get(fmt.Sprintf(path, i), jobj)
		if err != nil {
			return ""
		}
		// jsonpath may wrap a single answer in a list
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		s, _ := jval.(string)
		return s
	}

	count, err := jsonpath.Get("$", jobj)
	if err != nil {
		return nil, err
	}
	list, ok := count.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected search payload for %q", query)
	}

	results := make([]SearchResult, 0, len(list))
	for i := range list {
		results = append(results, SearchResult{
			Code:     str("$[%d].Code", i),
			Exchange: str("$[%d].Exchange", i),
			Name:     str("$[%d].Name", i),
			Currency: str("$[%d].Currency", i),
		})
	}
	return results, nil
}
