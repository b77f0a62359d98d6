package handlers

import (
	"github.com/jmoiron/sqlx"

	"tradepost/internal/repos"
	"tradepost/internal/services"
)

type Deps struct {
	ItemsHandler          *ItemsHandler
	MerchantsHandler      *MerchantsHandler
	ItemSearchHandler     *ItemSearchHandler
	MerchantSearchHandler *MerchantSearchHandler
	RevenueHandler        *RevenueHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	itemRepo := repos.NewItemRepo(db)
	merchantRepo := repos.NewMerchantRepo(db)

	itemSearch := services.NewItemSearchService(itemRepo)
	merchantSearch := services.NewMerchantSearchService(merchantRepo)

	return &Deps{
		ItemsHandler:          &ItemsHandler{Items: itemRepo, Merchants: merchantRepo},
		MerchantsHandler:      &MerchantsHandler{Merchants: merchantRepo, Items: itemRepo, Search: merchantSearch},
		ItemSearchHandler:     &ItemSearchHandler{Search: itemSearch},
		MerchantSearchHandler: &MerchantSearchHandler{Search: merchantSearch},
		RevenueHandler:        &RevenueHandler{Search: merchantSearch},
	}
}
