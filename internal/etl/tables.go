package etl

import (
	"fmt"

	"github.com/BartekS5/portalsync/pkg/database"
	"github.com/BartekS5/portalsync/pkg/models"
)

type table struct {
	name   string
	query  func(d database.Dialect, windowYears int) string
	record func(r Row) (models.Record, error)
}

func (t *table) Name() string { return t.name }

func (t *table) Query(d database.Dialect, windowYears int) string {
	return t.query(d, windowYears)
}

func (t *table) Record(r Row) (models.Record, error) { return t.record(r) }

var (
	Customers Table = &table{
		name: "customer",
		query: func(database.Dialect, int) string {
			return `SELECT cust_no, cust_name, addr_1, addr_2, cust_city, cust_state, cust_zip, phone, active
FROM customer
WHERE active = 1
ORDER BY cust_no`
		},
		record: customerFromRow,
	}

	OrderHeaders Table = &table{
		name: "order_header",
		query: func(d database.Dialect, years int) string {
			return fmt.Sprintf(`SELECT ord_no, ord_type, ord_date, cust_no, po_no, buyer, ship_via, ship_to_name,
	ship_date, inv_no, inv_date, status, freight_amt, tax_amt
FROM order_header
WHERE ord_date >= %s
ORDER BY ord_no`, d.Cutoff(years))
		},
		record: orderHeaderFromRow,
	}

	// Lines are selected through their header so both extracts share the same window.
	OrderDetails Table = &table{
		name: "order_detail",
		query: func(d database.Dialect, years int) string {
			return fmt.Sprintf(`SELECT l.ord_no, l.line_no, l.mfg_no, l.item_no, l.item_desc_1, l.item_desc_2,
	l.qty_ordered, l.qty_shipped, l.qty_balance, l.unit_price, l.due_date, l.status
FROM order_line l
JOIN order_header h ON h.ord_no = l.ord_no
WHERE h.ord_date >= %s
ORDER BY l.ord_no, l.line_no`, d.Cutoff(years))
		},
		record: orderDetailFromRow,
	}
)

// DefaultTables is the fixed run order: details follow the headers they belong to.
var DefaultTables = []Table{Customers, OrderHeaders, OrderDetails}
