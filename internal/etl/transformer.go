package etl

import (
	"github.com/pkg/errors"

	"github.com/BartekS5/portalsync/pkg/models"
	"github.com/BartekS5/portalsync/pkg/utils"
)

// converter collects the first conversion error so a record can be built
// field by field and checked once.
type converter struct {
	row Row
	err error
}

func (c *converter) textOf(col string) string { return utils.Text(c.row[col]) }

func (c *converter) floatOf(col string) float64 {
	v, err := utils.Float(c.row[col])
	c.fail(col, err)
	return v
}

func (c *converter) intOf(col string) int64 {
	v, err := utils.Int(c.row[col])
	c.fail(col, err)
	return v
}

func (c *converter) boolOf(col string) bool {
	v, err := utils.Bool(c.row[col])
	c.fail(col, err)
	return v
}

func (c *converter) fail(col string, err error) {
	if err != nil && c.err == nil {
		c.err = errors.Wrapf(err, "column %s", col)
	}
}

func customerFromRow(r Row) (models.Record, error) {
	c := &converter{row: r}
	rec := &models.Customer{
		CustNo: c.textOf("cust_no"),
		Name:   c.textOf("cust_name"),
		Addr1:  utils.NullText(r["addr_1"]),
		Addr2:  utils.NullText(r["addr_2"]),
		City:   utils.NullText(r["cust_city"]),
		State:  utils.NullText(r["cust_state"]),
		Zip:    utils.NullText(r["cust_zip"]),
		Phone:  utils.NullText(r["phone"]),
		Active: c.boolOf("active"),
	}
	return rec, c.err
}

func orderHeaderFromRow(r Row) (models.Record, error) {
	c := &converter{row: r}
	rec := &models.OrderHeader{
		OrdNo:      c.textOf("ord_no"),
		OrdType:    c.textOf("ord_type"),
		CustNo:     utils.NullText(r["cust_no"]),
		PONo:       c.textOf("po_no"),
		Buyer:      c.textOf("buyer"),
		ShipVia:    utils.NullText(r["ship_via"]),
		ShipToName: utils.NullText(r["ship_to_name"]),
		InvNo:      utils.NullText(r["inv_no"]),
		Status:     c.textOf("status"),
	}

	var err error
	rec.OrdDate, err = utils.Time(r["ord_date"])
	c.fail("ord_date", err)
	rec.ShipDate, err = utils.NullTime(r["ship_date"])
	c.fail("ship_date", err)
	rec.InvDate, err = utils.NullTime(r["inv_date"])
	c.fail("inv_date", err)
	rec.Freight, err = utils.NullFloat(r["freight_amt"])
	c.fail("freight_amt", err)
	rec.Tax, err = utils.NullFloat(r["tax_amt"])
	c.fail("tax_amt", err)

	return rec, c.err
}

func orderDetailFromRow(r Row) (models.Record, error) {
	c := &converter{row: r}
	rec := &models.OrderDetail{
		OrdNo:      c.textOf("ord_no"),
		LineNo:     c.intOf("line_no"),
		MfgNo:      c.textOf("mfg_no"),
		ItemNo:     c.textOf("item_no"),
		ItemDesc1:  utils.NullText(r["item_desc_1"]),
		ItemDesc2:  utils.NullText(r["item_desc_2"]),
		QtyOrdered: c.floatOf("qty_ordered"),
		QtyShipped: c.floatOf("qty_shipped"),
		QtyBalance: c.floatOf("qty_balance"),
		Status:     c.textOf("status"),
	}

	var err error
	rec.UnitPrice, err = utils.NullFloat(r["unit_price"])
	c.fail("unit_price", err)
	rec.DueDate, err = utils.NullTime(r["due_date"])
	c.fail("due_date", err)

	return rec, c.err
}
