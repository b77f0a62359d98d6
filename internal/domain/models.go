package domain

type Merchant struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type Item struct {
	ID          string  `db:"id"`
	MerchantID  string  `db:"merchant_id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	UnitPrice   float64 `db:"unit_price"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

type Invoice struct {
	ID         string `db:"id"`
	MerchantID string `db:"merchant_id"`
	Status     string `db:"status"` // shipped | packaged | returned
	CreatedAt  string `db:"created_at"`
}

type InvoiceItem struct {
	ID        string  `db:"id"`
	InvoiceID string  `db:"invoice_id"`
	ItemID    string  `db:"item_id"`
	Quantity  int     `db:"quantity"`
	UnitPrice float64 `db:"unit_price"` // price charged at sale time
}

type Transaction struct {
	ID        string `db:"id"`
	InvoiceID string `db:"invoice_id"`
	Result    string `db:"result"` // success | failed
	CreatedAt string `db:"created_at"`
}

// MerchantRevenue is one row of a revenue ranking.
type MerchantRevenue struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	Revenue float64 `db:"revenue"`
}

// MerchantItemCount is one row of a shipped-item-count ranking.
type MerchantItemCount struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Count int    `db:"count"`
}
