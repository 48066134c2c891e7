package mirra

import (
	"context"
	"net/url"
	"strconv"
)

// MarketplaceItemType categorizes a marketplace listing.
type MarketplaceItemType string

const (
	MarketplaceTypeAgent    MarketplaceItemType = "agent"
	MarketplaceTypeScript   MarketplaceItemType = "script"
	MarketplaceTypeResource MarketplaceItemType = "resource"
	MarketplaceTypeTemplate MarketplaceItemType = "template"
)

// MarketplaceItem is one catalog listing.
type MarketplaceItem struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Type        MarketplaceItemType `json:"type"`
	Author      string              `json:"author"`
	Price       *float64            `json:"price,omitempty"`
	Rating      *float64            `json:"rating,omitempty"`
	Installs    *int                `json:"installs,omitempty"`
}

// MarketplaceFilters narrow a Browse call. Zero-value fields are omitted
// from the query string.
type MarketplaceFilters struct {
	Type     MarketplaceItemType
	Category string
	Search   string
	Limit    int
	Offset   int
}

func (f *MarketplaceFilters) query() url.Values {
	q := url.Values{}
	if f == nil {
		return q
	}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

// MarketplaceService exposes the /marketplace endpoints.
type MarketplaceService struct {
	client *Client
}

// Browse lists marketplace items. filters may be nil.
func (s *MarketplaceService) Browse(ctx context.Context, filters *MarketplaceFilters) ([]MarketplaceItem, error) {
	var out []MarketplaceItem
	if err := s.client.do(ctx, "GET", "/marketplace", nil, filters.query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search performs a full-text marketplace search.
func (s *MarketplaceService) Search(ctx context.Context, query string) ([]MarketplaceItem, error) {
	var out []MarketplaceItem
	q := url.Values{}
	q.Set("q", query)
	if err := s.client.do(ctx, "GET", "/marketplace/search", nil, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
