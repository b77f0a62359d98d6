package services

import (
	"database/sql"
	"errors"

	"tradepost/internal/domain"
)

// MerchantFinder is the store capability the merchant search engine needs.
type MerchantFinder interface {
	FindFirstByName(fragment string) (domain.Merchant, error)
	FindAllByName(fragment string) ([]domain.Merchant, error)
	TopByRevenue(n int) ([]domain.MerchantRevenue, error)
	TopByItemCount(n int) ([]domain.MerchantItemCount, error)
}

type MerchantSearchService struct {
	Merchants MerchantFinder
}

func NewMerchantSearchService(merchants MerchantFinder) *MerchantSearchService {
	return &MerchantSearchService{Merchants: merchants}
}

// FindFirstByName returns the first case-insensitive alphabetical match. No
// match is a result, not an error.
func (s *MerchantSearchService) FindFirstByName(fragment string) (domain.Merchant, bool, error) {
	m, err := s.Merchants.FindFirstByName(fragment)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Merchant{}, false, nil
	}
	if err != nil {
		return domain.Merchant{}, false, err
	}
	return m, true, nil
}

func (s *MerchantSearchService) FindAllByName(fragment string) ([]domain.Merchant, error) {
	return s.Merchants.FindAllByName(fragment)
}

// TopByRevenue assumes n was validated by the caller.
func (s *MerchantSearchService) TopByRevenue(n int) ([]domain.MerchantRevenue, error) {
	return s.Merchants.TopByRevenue(n)
}

func (s *MerchantSearchService) TopByItemCount(n int) ([]domain.MerchantItemCount, error) {
	return s.Merchants.TopByItemCount(n)
}
