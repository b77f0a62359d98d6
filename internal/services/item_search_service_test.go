package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"tradepost/internal/repos"
	"tradepost/internal/search"
	"tradepost/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE merchants(id TEXT PRIMARY KEY, name TEXT NOT NULL, created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT);
	CREATE TABLE items(id TEXT PRIMARY KEY, merchant_id TEXT NOT NULL, name TEXT NOT NULL,
	  description TEXT, unit_price NUMERIC NOT NULL, created_at TEXT DEFAULT CURRENT_TIMESTAMP, updated_at TEXT);

	INSERT INTO merchants(id,name) VALUES ('m-1','REI');
	INSERT INTO items(id,merchant_id,name,description,unit_price) VALUES
	  ('i-backpack','m-1','Backpack','65L pack',40.99),
	  ('i-boots','m-1','Hiking Boots','Leather boots',35.99),
	  ('i-gumboot','m-1','Gumboot','Rain boot',19.99),
	  ('i-tent','m-1','Tent','Three-season tent',99.99),
	  ('i-harness','m-1','Harness','Climbing harness',24.99);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func sp(s string) *string { return &s }

func TestItemSearch_ByNameMatchesSubstringIgnoringCase(t *testing.T) {
	db := memdb(t)
	svc := services.NewItemSearchService(repos.NewItemRepo(db))

	crit, err := search.Resolve(search.Params{Name: sp("Boot")})
	require.NoError(t, err)

	items, err := svc.Search(crit)
	require.NoError(t, err)

	got := make([]string, 0, len(items))
	for _, i := range items {
		got = append(got, i.Name)
	}
	// storage order, both names containing "boot" ignoring case
	assert.Equal(t, []string{"Hiking Boots", "Gumboot"}, got)
}

func TestItemSearch_ByNameRespectsLimit(t *testing.T) {
	db := memdb(t)
	svc := services.NewItemSearchService(repos.NewItemRepo(db))

	crit, err := search.Resolve(search.Params{Name: sp("boot"), Limit: sp("1")})
	require.NoError(t, err)

	items, err := svc.Search(crit)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Hiking Boots", items[0].Name)
}

func TestItemSearch_ByPriceRangeOrdersByName(t *testing.T) {
	db := memdb(t)
	svc := services.NewItemSearchService(repos.NewItemRepo(db))

	crit, err := search.Resolve(search.Params{MinPrice: sp("20"), MaxPrice: sp("45")})
	require.NoError(t, err)

	items, err := svc.Search(crit)
	require.NoError(t, err)

	got := make([]string, 0, len(items))
	for _, i := range items {
		got = append(got, i.Name)
	}
	assert.Equal(t, []string{"Backpack", "Harness", "Hiking Boots"}, got)
}

func TestItemSearch_FirstByPriceIsFirstAlphabetically(t *testing.T) {
	db := memdb(t)
	svc := services.NewItemSearchService(repos.NewItemRepo(db))

	crit, err := search.Resolve(search.Params{MinPrice: sp("20"), MaxPrice: sp("45")})
	require.NoError(t, err)

	item, found, err := svc.SearchFirst(crit)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Backpack", item.Name)
}

func TestItemSearch_AbsentMaxDefaultsToDataMaximum(t *testing.T) {
	db := memdb(t)
	repo := repos.NewItemRepo(db)
	svc := services.NewItemSearchService(repo)

	crit, err := search.Resolve(search.Params{MinPrice: sp("50")})
	require.NoError(t, err)

	items, err := svc.Search(crit)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tent", items[0].Name)

	// The default upper bound moves with the data: a pricier item inserted
	// later is covered by the same criteria on the next call.
	_, err = repo.Create("m-1", "Kayak", "Touring kayak", 499.00)
	require.NoError(t, err)

	items, err = svc.Search(crit)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Kayak", items[0].Name)
	assert.Equal(t, "Tent", items[1].Name)
}

func TestItemSearch_NoMatchesIsEmptyNotError(t *testing.T) {
	db := memdb(t)
	svc := services.NewItemSearchService(repos.NewItemRepo(db))

	crit, err := search.Resolve(search.Params{Name: sp("kayak")})
	require.NoError(t, err)

	items, err := svc.Search(crit)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, found, err := svc.SearchFirst(crit)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestItemSearch_NoCriteriaNeverTouchesStore(t *testing.T) {
	svc := services.NewItemSearchService(nil) // a store call would panic

	items, err := svc.Search(search.Criteria{})
	require.NoError(t, err)
	assert.Empty(t, items)
}
