package models

import (
	"database/sql"
	"fmt"
	"time"
)

// OrderHeader is a row of the mirror's order_header table.
type OrderHeader struct {
	OrdNo      string
	OrdType    string
	OrdDate    time.Time
	CustNo     sql.NullString
	PONo       string
	Buyer      string
	ShipVia    sql.NullString
	ShipToName sql.NullString
	ShipDate   sql.NullTime
	InvNo      sql.NullString
	InvDate    sql.NullTime
	Status     string
	Freight    sql.NullFloat64
	Tax        sql.NullFloat64
}

func (h *OrderHeader) Key() string { return h.OrdNo }

func (h *OrderHeader) Bindings() []Binding {
	return []Binding{
		{"ord_no", h.OrdNo},
		{"ord_type", h.OrdType},
		{"ord_date", h.OrdDate},
		{"cust_no", h.CustNo},
		{"po_no", h.PONo},
		{"buyer", h.Buyer},
		{"ship_via", h.ShipVia},
		{"ship_to_name", h.ShipToName},
		{"ship_date", h.ShipDate},
		{"inv_no", h.InvNo},
		{"inv_date", h.InvDate},
		{"status", h.Status},
		{"freight_amt", h.Freight},
		{"tax_amt", h.Tax},
	}
}

// OrderDetail is a row of the mirror's order_detail table. It belongs to the
// OrderHeader with the same OrdNo, though nothing checks that one exists.
type OrderDetail struct {
	OrdNo      string
	LineNo     int64
	MfgNo      string
	ItemNo     string
	ItemDesc1  sql.NullString
	ItemDesc2  sql.NullString
	QtyOrdered float64
	QtyShipped float64
	QtyBalance float64
	UnitPrice  sql.NullFloat64
	DueDate    sql.NullTime
	Status     string
}

func (d *OrderDetail) Key() string { return fmt.Sprintf("%s/%d", d.OrdNo, d.LineNo) }

func (d *OrderDetail) Bindings() []Binding {
	return []Binding{
		{"ord_no", d.OrdNo},
		{"line_no", d.LineNo},
		{"mfg_no", d.MfgNo},
		{"item_no", d.ItemNo},
		{"item_desc_1", d.ItemDesc1},
		{"item_desc_2", d.ItemDesc2},
		{"qty_ordered", d.QtyOrdered},
		{"qty_shipped", d.QtyShipped},
		{"qty_balance", d.QtyBalance},
		{"unit_price", d.UnitPrice},
		{"due_date", d.DueDate},
		{"status", d.Status},
	}
}
