package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createVendorStatusTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE vendor_status (
		vendor_id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		merchant_id TEXT,
		equipment_profile_id TEXT,
		banner_profile_id TEXT,
		updated_at DATETIME
	);`)
}

func createMerchantTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchants (
		id TEXT PRIMARY KEY,
		pdv_name TEXT NOT NULL,
		person_type TEXT NOT NULL,
		cpf_cnpj TEXT NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		address_full TEXT,
		address_city TEXT,
		address_state TEXT,
		address_zipcode TEXT,
		bank_account_type TEXT,
		bank_name TEXT,
		bank_agency TEXT,
		bank_account TEXT,
		bank_holder_doc TEXT,
		bank_holder_name TEXT,
		pix_key TEXT,
		machines_qty INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createEquipmentTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE equipment_profiles (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		vendor_id TEXT NOT NULL,
		outlets110 INTEGER NOT NULL DEFAULT 0,
		outlets220 INTEGER NOT NULL DEFAULT 0,
		other_outlets_qty INTEGER NOT NULL DEFAULT 0,
		other_outlets_label TEXT,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE equipment_items (
		id TEXT PRIMARY KEY,
		equipment_profile_id TEXT NOT NULL,
		name TEXT NOT NULL,
		qty INTEGER NOT NULL,
		position INTEGER NOT NULL
	);`)
}

func createMenuTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE menu_categories (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		name TEXT NOT NULL,
		position INTEGER NOT NULL,
		is_active BOOLEAN NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE menu_products (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL,
		category_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price_cents INTEGER NOT NULL,
		position INTEGER NOT NULL,
		is_active BOOLEAN NOT NULL,
		created_at DATETIME
	);`)
}

func createBannerTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE vendor_banners (
		id TEXT PRIMARY KEY,
		merchant_id TEXT NOT NULL UNIQUE,
		banner_name TEXT NOT NULL,
		theme TEXT NOT NULL,
		accent TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	createVendorStatusTable(t, db)
	createMerchantTable(t, db)
	createEquipmentTables(t, db)
	createMenuTables(t, db)
	createBannerTable(t, db)
}
