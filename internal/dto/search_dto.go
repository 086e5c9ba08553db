package dto

import "encoding/json"

type SearchRequest struct {
	Query string `json:"query"`
	// Pointer so an absent limit (default 50) is distinguishable from zero.
	Limit *int `json:"limit"`
}

// UnmarshalJSON tolerates a mistyped limit: anything that is not a JSON
// number is treated as absent so the default applies, instead of failing the
// whole body.
func (r *SearchRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Query string          `json:"query"`
		Limit json.RawMessage `json:"limit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Query = raw.Query
	r.Limit = nil
	// An explicit null is absent too; unmarshalling null into an int is a
	// silent no-op, so it must not reach the numeric path.
	if len(raw.Limit) > 0 && string(raw.Limit) != "null" {
		var n int
		if err := json.Unmarshal(raw.Limit, &n); err == nil {
			r.Limit = &n
		}
	}
	return nil
}

type PatternResult struct {
	Id            int64    `json:"id"`
	FileName      string   `json:"file_name"`
	FileExtension string   `json:"file_extension"`
	Author        string   `json:"author"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	Similarity    *float64 `json:"similarity,omitempty"` // semantic results only
}

type SearchResponse struct {
	Patterns     []PatternResult `json:"patterns"`
	Query        string          `json:"query"`
	Count        int             `json:"count"`
	SearchMethod string          `json:"searchMethod"` // "semantic" | "text"
	FallbackUsed bool            `json:"fallbackUsed"`
	CacheHit     *bool           `json:"cacheHit,omitempty"`
}
