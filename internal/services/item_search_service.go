package services

import (
	"tradepost/internal/domain"
	"tradepost/internal/search"
)

// ItemFinder is the store capability the item search engine needs.
type ItemFinder interface {
	FindByNamePattern(fragment string, limit int) ([]domain.Item, error)
	FindByPriceRange(min, max float64, limit int) ([]domain.Item, error)
	MaxUnitPrice() (float64, error)
}

type ItemSearchService struct {
	Items ItemFinder
}

func NewItemSearchService(items ItemFinder) *ItemSearchService {
	return &ItemSearchService{Items: items}
}

// Search executes resolved criteria against the item collection. Criteria
// with no active mode never reach the store and yield an empty result.
func (s *ItemSearchService) Search(c search.Criteria) ([]domain.Item, error) {
	switch {
	case c.Name != nil:
		return s.Items.FindByNamePattern(c.Name.Fragment, c.Name.Limit)
	case c.Price != nil:
		return s.searchByPrice(*c.Price)
	default:
		return nil, nil
	}
}

// SearchFirst caps the result at one item and reports whether a match exists.
func (s *ItemSearchService) SearchFirst(c search.Criteria) (domain.Item, bool, error) {
	if c.Name != nil {
		n := *c.Name
		n.Limit = 1
		c.Name = &n
	}
	if c.Price != nil {
		p := *c.Price
		p.Limit = 1
		c.Price = &p
	}
	items, err := s.Search(c)
	if err != nil || len(items) == 0 {
		return domain.Item{}, false, err
	}
	return items[0], true, nil
}

// An absent upper bound defaults to the current maximum unit_price, looked up
// at query time. The bound therefore moves with the data, which is the
// documented behavior rather than an approximation of "no upper bound".
func (s *ItemSearchService) searchByPrice(pc search.PriceCriteria) ([]domain.Item, error) {
	max := 0.0
	if pc.Max != nil {
		max = *pc.Max
	} else {
		m, err := s.Items.MaxUnitPrice()
		if err != nil {
			return nil, err
		}
		max = m
	}
	return s.Items.FindByPriceRange(pc.Min, max, pc.Limit)
}
