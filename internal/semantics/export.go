package semantics

import (
	"fmt"
	"strings"
)

// SymbolRecord is the plain-data export form of one symbol, for
// external tooling (table viewers, golden files). No references back
// into the live table.
type SymbolRecord struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Scope       string `json:"scope"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Address     int    `json:"address"`
	Initialized bool   `json:"initialized"`
}

// Export flattens the table into records, scopes in creation order
// and symbols in declaration order. Deterministic for a fixed input.
func (st *SymbolTable) Export() []SymbolRecord {
	var out []SymbolRecord
	for _, id := range st.order {
		for _, sym := range st.all[id].Symbols() {
			typeName := "unknown"
			if sym.Type != nil {
				typeName = sym.Type.String()
			}
			out = append(out, SymbolRecord{
				Name:        sym.Name,
				Type:        typeName,
				Scope:       sym.ScopeID,
				Line:        sym.Line,
				Column:      sym.Column,
				Address:     sym.Address,
				Initialized: sym.Initialized,
			})
		}
	}
	return out
}

// FormatSymbolTable renders records as an aligned text table.
func FormatSymbolTable(records []SymbolRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-8s %-14s %6s %6s %8s %s\n",
		"NAME", "TYPE", "SCOPE", "LINE", "COL", "ADDR", "INIT")
	for _, r := range records {
		init := "no"
		if r.Initialized {
			init = "yes"
		}
		fmt.Fprintf(&b, "%-12s %-8s %-14s %6d %6d %8d %s\n",
			r.Name, r.Type, r.Scope, r.Line, r.Column, r.Address, init)
	}
	return b.String()
}
