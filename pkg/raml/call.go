// Package raml infers a RAML 0.8 API description from recorded HTTP calls.
//
// The pipeline is:
//
//	calls -> Build -> Refine -> [Merge / MergeParameterized] -> Serializer.Render
//
// Build groups calls into a resource tree keyed by raw URL path segments and
// accumulates them on per-verb methods. Rendering finalizes every method,
// deriving query parameter descriptors, request bodies and responses, and
// registering deduplicated schema and example artifacts with the API.
package raml

// ParamOccurrence is a single name=value pair taken from a query string.
type ParamOccurrence struct {
	Name  string
	Value string
}

// ParamUsecase holds every occurrence of one parameter name within a single call.
type ParamUsecase struct {
	Name        string
	Occurrences []ParamOccurrence
}

// RawBody is a captured payload before any interpretation.
type RawBody struct {
	MediaType string
	Text      string
}

// CallRecord is one HTTP exchange reduced to what the inference needs.
// The URL carries scheme and host but no query string or fragment.
type CallRecord struct {
	Method         string
	URL            string
	Query          []ParamOccurrence
	RequestBody    *RawBody
	ResponseStatus string
	ResponseBody   *RawBody
}

// Usecases groups the call's query occurrences by name, in order of first appearance.
func (c *CallRecord) Usecases() []ParamUsecase {
	if len(c.Query) == 0 {
		return nil
	}
	index := make(map[string]int, len(c.Query))
	var result []ParamUsecase
	for _, occ := range c.Query {
		i, ok := index[occ.Name]
		if !ok {
			i = len(result)
			index[occ.Name] = i
			result = append(result, ParamUsecase{Name: occ.Name})
		}
		result[i].Occurrences = append(result[i].Occurrences, occ)
	}
	return result
}
