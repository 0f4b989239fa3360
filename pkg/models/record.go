// Package models defines the rows copied from the ERP into the portal mirror.
package models

// Binding pairs a destination column with the value written to it.
type Binding struct {
	Column string
	Value  interface{}
}

// Record is one destination row. Key is the business key used in diagnostics.
type Record interface {
	Key() string
	Bindings() []Binding
}
