package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (merchants/items/invoice graph)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Merchants
CREATE TABLE IF NOT EXISTS merchants(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_merchants_name_nocase ON merchants(LOWER(name));

-- Items
CREATE TABLE IF NOT EXISTS items(
  id TEXT PRIMARY KEY,
  merchant_id TEXT NOT NULL REFERENCES merchants(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  description TEXT,
  unit_price NUMERIC NOT NULL CHECK (unit_price >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_items_merchant    ON items(merchant_id);
CREATE INDEX IF NOT EXISTS idx_items_name_nocase ON items(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_items_unit_price  ON items(unit_price);

-- Invoices
CREATE TABLE IF NOT EXISTS invoices(
  id TEXT PRIMARY KEY,
  merchant_id TEXT NOT NULL REFERENCES merchants(id) ON DELETE CASCADE,
  status TEXT NOT NULL CHECK (status IN ('shipped','packaged','returned')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_invoices_merchant ON invoices(merchant_id);
CREATE INDEX IF NOT EXISTS idx_invoices_status   ON invoices(status);

CREATE TABLE IF NOT EXISTS invoice_items(
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
  item_id TEXT NOT NULL REFERENCES items(id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  unit_price NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items(invoice_id);
CREATE INDEX IF NOT EXISTS idx_invoice_items_item    ON invoice_items(item_id);

-- Transactions
CREATE TABLE IF NOT EXISTS transactions(
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
  result TEXT NOT NULL CHECK (result IN ('success','failed')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_transactions_invoice ON transactions(invoice_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM merchants`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo merchants/items/invoices")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO merchants(id,name) VALUES
	  ('m-rei','REI'),
	  ('m-patagonia','Patagonia'),
	  ('m-lands-end','Lands End'),
	  ('m-crate','Crate And Barrel')`)

	tx.MustExec(`INSERT INTO items(id,merchant_id,name,description,unit_price) VALUES
	  ('i-backpack','m-rei','Backpack','65L trekking pack',40.99),
	  ('i-boots','m-rei','Hiking Boots','Waterproof leather boots',35.99),
	  ('i-gumboot','m-lands-end','Gumboot','Rubber rain boot',19.99),
	  ('i-tent','m-patagonia','Tent','Two-person three-season tent',99.99),
	  ('i-harness','m-patagonia','Harness','Climbing harness',24.99)`)
	if err := tx.Commit(); err != nil {
		return err
	}

	// A small shipped/successful sales history so the ranking endpoints have
	// something to aggregate on a fresh database.
	inv := NewInvoiceRepo(db)
	sales := []struct {
		merchantID string
		status     string
		result     string
		itemID     string
		qty        int
		price      float64
	}{
		{"m-rei", "shipped", "success", "i-backpack", 3, 40.99},
		{"m-rei", "shipped", "success", "i-boots", 2, 35.99},
		{"m-patagonia", "shipped", "success", "i-tent", 1, 99.99},
		{"m-lands-end", "shipped", "failed", "i-gumboot", 5, 19.99},
		{"m-crate", "packaged", "success", "i-harness", 4, 24.99},
	}
	for _, s := range sales {
		in, err := inv.Create(s.merchantID, s.status)
		if err != nil {
			return err
		}
		if err := inv.AddItem(in.ID, s.itemID, s.qty, s.price); err != nil {
			return err
		}
		if err := inv.AddTransaction(in.ID, s.result); err != nil {
			return err
		}
	}
	return nil
}
