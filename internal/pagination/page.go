// Package pagination holds the opaque page token codec and page size
// normalization used by list endpoints.
package pagination

// Page is one page of a list response.
type Page[T any] struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	Data          []T    `json:"data"`
}

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Min     int
	Max     int
}

// DefaultPageSize is used when no configuration is supplied.
var DefaultPageSize = PageSizeConfig{Default: 20, Min: 10, Max: 1000}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Min > 0 && pageSize < cfg.Min {
		pageSize = cfg.Min
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}
