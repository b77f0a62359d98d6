package repos

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tradepost/internal/domain"
)

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemCols = `id, merchant_id, name, COALESCE(description,'') AS description, unit_price,
    created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ItemRepo) List() ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `SELECT `+itemCols+` FROM items ORDER BY rowid`)
	return out, err
}

func (r *ItemRepo) Get(id string) (domain.Item, error) {
	var it domain.Item
	err := r.db.Get(&it, `SELECT `+itemCols+` FROM items WHERE id = ?`, id)
	return it, err
}

func (r *ItemRepo) ListByMerchant(merchantID string) ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT `+itemCols+`
	  FROM items
	  WHERE merchant_id = ?
	  ORDER BY rowid
	`, merchantID)
	return out, err
}

func (r *ItemRepo) Create(merchantID, name, description string, unitPrice float64) (domain.Item, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
	  INSERT INTO items(id, merchant_id, name, description, unit_price, created_at)
	  VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, id, merchantID, name, description, unitPrice)
	if err != nil {
		return domain.Item{}, err
	}
	return r.Get(id)
}

// Update applies only the supplied fields; nil pointers leave the column alone.
func (r *ItemRepo) Update(id string, name, description *string, unitPrice *float64, merchantID *string) (domain.Item, error) {
	set := []string{`updated_at = CURRENT_TIMESTAMP`}
	args := []any{}
	if name != nil {
		set = append(set, `name = ?`)
		args = append(args, *name)
	}
	if description != nil {
		set = append(set, `description = ?`)
		args = append(args, *description)
	}
	if unitPrice != nil {
		set = append(set, `unit_price = ?`)
		args = append(args, *unitPrice)
	}
	if merchantID != nil {
		set = append(set, `merchant_id = ?`)
		args = append(args, *merchantID)
	}
	args = append(args, id)
	if _, err := r.db.Exec(`UPDATE items SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...); err != nil {
		return domain.Item{}, err
	}
	return r.Get(id)
}

// Delete removes the item along with any invoices for which it was the only
// line item, so no empty invoices linger in the sales history.
func (r *ItemRepo) Delete(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  DELETE FROM invoices WHERE id IN (
	    SELECT invoice_id FROM invoice_items
	    GROUP BY invoice_id
	    HAVING COUNT(*) = 1 AND MAX(item_id) = ?
	  )
	`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM invoice_items WHERE item_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM items WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// FindByNamePattern returns items whose name contains the fragment ignoring
// case, in storage order. limit <= 0 means unbounded.
func (r *ItemRepo) FindByNamePattern(fragment string, limit int) ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT `+itemCols+`
	  FROM items
	  WHERE LOWER(name) LIKE ?
	  ORDER BY rowid
	  LIMIT ?
	`, "%"+strings.ToLower(fragment)+"%", sqlLimit(limit))
	return out, err
}

// FindByPriceRange returns items with min <= unit_price <= max, ordered by
// name ascending. Bounds are always bound arguments, never interpolated.
func (r *ItemRepo) FindByPriceRange(min, max float64, limit int) ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT `+itemCols+`
	  FROM items
	  WHERE unit_price BETWEEN ? AND ?
	  ORDER BY name
	  LIMIT ?
	`, min, max, sqlLimit(limit))
	return out, err
}

// MaxUnitPrice reports the current maximum unit_price across all items. It is
// recomputed per call; concurrent writes move it.
func (r *ItemRepo) MaxUnitPrice() (float64, error) {
	var max float64
	err := r.db.Get(&max, `SELECT COALESCE(MAX(unit_price), 0) FROM items`)
	return max, err
}

// sqlLimit maps "unbounded" onto sqlite's LIMIT -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
