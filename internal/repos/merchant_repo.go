package repos

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tradepost/internal/domain"
)

type MerchantRepo struct{ db *sqlx.DB }

func NewMerchantRepo(db *sqlx.DB) *MerchantRepo { return &MerchantRepo{db: db} }

const merchantCols = `id, name, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *MerchantRepo) List() ([]domain.Merchant, error) {
	var out []domain.Merchant
	err := r.db.Select(&out, `SELECT `+merchantCols+` FROM merchants ORDER BY rowid`)
	return out, err
}

func (r *MerchantRepo) Get(id string) (domain.Merchant, error) {
	var m domain.Merchant
	err := r.db.Get(&m, `SELECT `+merchantCols+` FROM merchants WHERE id = ?`, id)
	return m, err
}

func (r *MerchantRepo) Create(name string) (domain.Merchant, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
	  INSERT INTO merchants(id, name, created_at) VALUES(?, ?, CURRENT_TIMESTAMP)
	`, id, name)
	if err != nil {
		return domain.Merchant{}, err
	}
	return r.Get(id)
}

// ForItem returns the merchant owning the given item.
func (r *MerchantRepo) ForItem(itemID string) (domain.Merchant, error) {
	var m domain.Merchant
	err := r.db.Get(&m, `
	  SELECT m.id, m.name, m.created_at, COALESCE(m.updated_at,'') AS updated_at
	  FROM merchants m
	  JOIN items i ON i.merchant_id = m.id
	  WHERE i.id = ?
	`, itemID)
	return m, err
}

// FindFirstByName returns the merchant sorting first under case-insensitive
// lexicographic order among case-insensitive substring matches. sql.ErrNoRows
// when nothing matches.
func (r *MerchantRepo) FindFirstByName(fragment string) (domain.Merchant, error) {
	var m domain.Merchant
	err := r.db.Get(&m, `
	  SELECT `+merchantCols+`
	  FROM merchants
	  WHERE LOWER(name) LIKE ?
	  ORDER BY LOWER(name)
	  LIMIT 1
	`, "%"+strings.ToLower(fragment)+"%")
	return m, err
}

func (r *MerchantRepo) FindAllByName(fragment string) ([]domain.Merchant, error) {
	var out []domain.Merchant
	err := r.db.Select(&out, `
	  SELECT `+merchantCols+`
	  FROM merchants
	  WHERE LOWER(name) LIKE ?
	  ORDER BY LOWER(name)
	`, "%"+strings.ToLower(fragment)+"%")
	return out, err
}

// Only shipped invoices with at least one successful transaction count toward
// the rankings. The transaction gate is an EXISTS so invoices with several
// successful transactions are not double-counted.

func (r *MerchantRepo) TopByRevenue(n int) ([]domain.MerchantRevenue, error) {
	var out []domain.MerchantRevenue
	err := r.db.Select(&out, `
	  SELECT m.id, m.name, COALESCE(SUM(ii.quantity * ii.unit_price), 0) AS revenue
	  FROM merchants m
	  JOIN invoices i       ON i.merchant_id = m.id AND i.status = 'shipped'
	  JOIN invoice_items ii ON ii.invoice_id = i.id
	  WHERE EXISTS (
	    SELECT 1 FROM transactions t
	    WHERE t.invoice_id = i.id AND t.result = 'success'
	  )
	  GROUP BY m.id, m.name
	  ORDER BY revenue DESC
	  LIMIT ?
	`, n)
	return out, err
}

func (r *MerchantRepo) TopByItemCount(n int) ([]domain.MerchantItemCount, error) {
	var out []domain.MerchantItemCount
	err := r.db.Select(&out, `
	  SELECT m.id, m.name, COALESCE(SUM(ii.quantity), 0) AS count
	  FROM merchants m
	  JOIN invoices i       ON i.merchant_id = m.id AND i.status = 'shipped'
	  JOIN invoice_items ii ON ii.invoice_id = i.id
	  WHERE EXISTS (
	    SELECT 1 FROM transactions t
	    WHERE t.invoice_id = i.id AND t.result = 'success'
	  )
	  GROUP BY m.id, m.name
	  ORDER BY count DESC
	  LIMIT ?
	`, n)
	return out, err
}
