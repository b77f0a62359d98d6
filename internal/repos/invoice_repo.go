package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tradepost/internal/domain"
)

type InvoiceRepo struct{ db *sqlx.DB }

func NewInvoiceRepo(db *sqlx.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

// Create inserts a new invoice header.
func (r *InvoiceRepo) Create(merchantID, status string) (domain.Invoice, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
	  INSERT INTO invoices(id, merchant_id, status, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, id, merchantID, status)
	if err != nil {
		return domain.Invoice{}, err
	}
	var inv domain.Invoice
	err = r.db.Get(&inv, `SELECT id, merchant_id, status, created_at FROM invoices WHERE id = ?`, id)
	return inv, err
}

// AddItem inserts a single line item recording the price charged at sale time.
func (r *InvoiceRepo) AddItem(invoiceID, itemID string, quantity int, unitPrice float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO invoice_items(id, invoice_id, item_id, quantity, unit_price)
	  VALUES(?, ?, ?, ?, ?)
	`, uuid.NewString(), invoiceID, itemID, quantity, unitPrice)
	return err
}

func (r *InvoiceRepo) AddTransaction(invoiceID, result string) error {
	_, err := r.db.Exec(`
	  INSERT INTO transactions(id, invoice_id, result, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, uuid.NewString(), invoiceID, result)
	return err
}

func (r *InvoiceRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE invoices SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *InvoiceRepo) Get(id string) (domain.Invoice, []domain.InvoiceItem, error) {
	var inv domain.Invoice
	if err := r.db.Get(&inv, `
	  SELECT id, merchant_id, status, created_at FROM invoices WHERE id = ?
	`, id); err != nil {
		return domain.Invoice{}, nil, err
	}

	var items []domain.InvoiceItem
	if err := r.db.Select(&items, `
	  SELECT id, invoice_id, item_id, quantity, unit_price
	  FROM invoice_items
	  WHERE invoice_id = ?
	  ORDER BY rowid
	`, id); err != nil {
		return domain.Invoice{}, nil, err
	}

	return inv, items, nil
}
