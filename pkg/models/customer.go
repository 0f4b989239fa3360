package models

import "database/sql"

// Customer is a row of the mirror's customer table.
type Customer struct {
	CustNo string
	Name   string
	Addr1  sql.NullString
	Addr2  sql.NullString
	City   sql.NullString
	State  sql.NullString
	Zip    sql.NullString
	Phone  sql.NullString
	Active bool
}

func (c *Customer) Key() string { return c.CustNo }

func (c *Customer) Bindings() []Binding {
	return []Binding{
		{"cust_no", c.CustNo},
		{"cust_name", c.Name},
		{"addr_1", c.Addr1},
		{"addr_2", c.Addr2},
		{"cust_city", c.City},
		{"cust_state", c.State},
		{"cust_zip", c.Zip},
		{"phone", c.Phone},
		{"active", c.Active},
	}
}
