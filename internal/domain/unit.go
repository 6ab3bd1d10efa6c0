package domain

import "fmt"

// UnitKind distinguishes the three overlapping unit families.
type UnitKind int

const (
	RowUnit UnitKind = iota
	ColUnit
	BoxUnit
)

func (k UnitKind) String() string {
	switch k {
	case RowUnit:
		return "row"
	case ColUnit:
		return "col"
	case BoxUnit:
		return "box"
	}
	return "unit"
}

// Unit names a row, column, or box; each holds exactly N cells and must
// contain each value exactly once in a solved grid.
type Unit struct {
	Kind  UnitKind
	Index int
}

func Row(i int) Unit { return Unit{Kind: RowUnit, Index: i} }
func Col(j int) Unit { return Unit{Kind: ColUnit, Index: j} }
func Box(k int) Unit { return Unit{Kind: BoxUnit, Index: k} }

func (u Unit) String() string { return fmt.Sprintf("%s %d", u.Kind, u.Index) }

// CellCoord identifies a cell, 0-indexed.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
