package etl

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/BartekS5/portalsync/internal/config"
)

const erpSchema = `
CREATE TABLE customer (
	cust_no CHAR(10), cust_name CHAR(40), addr_1 TEXT, addr_2 TEXT,
	cust_city TEXT, cust_state TEXT, cust_zip TEXT, phone TEXT, active INTEGER
);
CREATE TABLE order_header (
	ord_no TEXT, ord_type TEXT, ord_date DATE, cust_no TEXT, po_no TEXT, buyer TEXT,
	ship_via TEXT, ship_to_name TEXT, ship_date DATE, inv_no TEXT, inv_date DATE,
	status TEXT, freight_amt REAL, tax_amt REAL
);
CREATE TABLE order_line (
	ord_no TEXT, line_no INTEGER, mfg_no TEXT, item_no TEXT, item_desc_1 TEXT, item_desc_2 TEXT,
	qty_ordered REAL, qty_shipped REAL, qty_balance REAL, unit_price REAL, due_date DATE, status TEXT
);`

const mirrorSchema = `
CREATE TABLE customer (
	cust_no TEXT PRIMARY KEY, cust_name TEXT NOT NULL CHECK (cust_name <> ''),
	addr_1 TEXT, addr_2 TEXT, cust_city TEXT, cust_state TEXT, cust_zip TEXT, phone TEXT,
	active INTEGER NOT NULL, sync_date TEXT NOT NULL
);
CREATE TABLE order_header (
	ord_no TEXT PRIMARY KEY, ord_type TEXT NOT NULL, ord_date TEXT NOT NULL, cust_no TEXT,
	po_no TEXT NOT NULL, buyer TEXT NOT NULL, ship_via TEXT, ship_to_name TEXT, ship_date TEXT,
	inv_no TEXT, inv_date TEXT, status TEXT NOT NULL, freight_amt REAL, tax_amt REAL,
	sync_date TEXT NOT NULL
);
CREATE TABLE order_detail (
	ord_no TEXT NOT NULL, line_no INTEGER NOT NULL, mfg_no TEXT NOT NULL, item_no TEXT NOT NULL,
	item_desc_1 TEXT, item_desc_2 TEXT,
	qty_ordered REAL NOT NULL CHECK (qty_ordered >= 0), qty_shipped REAL NOT NULL, qty_balance REAL NOT NULL,
	unit_price REAL, due_date TEXT, status TEXT NOT NULL, sync_date TEXT NOT NULL,
	PRIMARY KEY (ord_no, line_no)
);`

// fixture is an ERP database and a mirror database, each a SQLite file.
type fixture struct {
	t      *testing.T
	erp    string
	mirror string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{t: t, erp: filepath.Join(dir, "erp.db"), mirror: filepath.Join(dir, "mirror.db")}
	f.execERP(erpSchema)
	f.execMirror(mirrorSchema)
	return f
}

func (f *fixture) config() *config.Config {
	return &config.Config{
		ERPConnString:    "sqlite:" + f.erp,
		MirrorConnString: "sqlite:" + f.mirror,
		WindowYears:      2,
	}
}

func (f *fixture) pipeline(tables ...Table) *Pipeline {
	p := NewPipeline(f.config(), nil)
	if len(tables) > 0 {
		p.Tables = tables
	}
	return p
}

func (f *fixture) open(path string) *sql.DB {
	f.t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(f.t, err)
	return db
}

func (f *fixture) exec(path, query string, args ...interface{}) {
	f.t.Helper()
	db := f.open(path)
	defer db.Close()
	_, err := db.Exec(query, args...)
	require.NoError(f.t, err, query)
}

func (f *fixture) execERP(query string, args ...interface{})    { f.exec(f.erp, query, args...) }
func (f *fixture) execMirror(query string, args ...interface{}) { f.exec(f.mirror, query, args...) }

// strings reads a single text column from the mirror.
func (f *fixture) strings(query string, args ...interface{}) []string {
	f.t.Helper()
	db := f.open(f.mirror)
	defer db.Close()

	rows, err := db.Query(query, args...)
	require.NoError(f.t, err, query)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		require.NoError(f.t, rows.Scan(&s))
		out = append(out, s)
	}
	require.NoError(f.t, rows.Err())
	return out
}

func (f *fixture) count(query string, args ...interface{}) int {
	f.t.Helper()
	db := f.open(f.mirror)
	defer db.Close()

	var n int
	require.NoError(f.t, db.QueryRow(query, args...).Scan(&n), query)
	return n
}

func (f *fixture) addCustomer(no, name string, phone interface{}, active int) {
	f.execERP(`INSERT INTO customer VALUES (?, ?, '1 Main St', NULL, 'Springfield', 'IL', '62701', ?, ?)`,
		no, name, phone, active)
}

func (f *fixture) addHeader(no string, date time.Time) {
	f.execERP(`INSERT INTO order_header VALUES (?, 'O', ?, 'C100', 'PO-1', 'JSMITH', NULL, NULL, NULL, NULL, NULL, 'OPEN', NULL, 12.5)`,
		no, date.Format("2006-01-02"))
}

func (f *fixture) addLine(ordNo string, lineNo int, qty float64) {
	f.execERP(`INSERT INTO order_line VALUES (?, ?, 'MFG', 'ITEM-1', 'Widget', NULL, ?, 0, ?, NULL, NULL, 'OPEN')`,
		ordNo, lineNo, qty, qty)
}

func monthsAgo(n int) time.Time { return time.Now().AddDate(0, -n, 0) }
