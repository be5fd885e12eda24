// Package query turns filter specs into parameterized Postgres statements
// Everything here is pure: no I/O and no shared mutable state
package query

import (
	"fmt"

	"paydash/internal/core/filter"
)

// SortField is one entry of a dataset's closed sortable field table
type SortField struct {
	ID      string   // wire name
	Aliases []string // extra accepted keys, matched after key normalization
	Column  string
	Numeric bool // stored as text, sorted by magnitude
}

// Expr renders the ORDER BY expression for the field
func (f SortField) Expr() string {
	if f.Numeric {
		return numericCast(f.Column)
	}
	return f.Column
}

// numericCast strips currency noise from a text column and casts it to numeric
func numericCast(col string) string {
	return fmt.Sprintf(`NULLIF(regexp_replace(%s, '[^0-9.\-]', '', 'g'), '')::numeric`, col)
}

// Schema describes one dataset table and how each dimension maps onto it
type Schema struct {
	Name  string
	Table string

	IDCol              string
	NameCol            string
	PeriodCol          string // timestamp the period filter matches
	SecondaryPeriodCol string // first key of the tie-break
	BranchCol          string
	JobTitleCol        string
	StatusCol          string

	SearchCols []string
	SelectCols []string

	// PeriodLabel renders the grouped period value, it must accept the period filter formats
	PeriodLabel string

	Sort        []SortField
	DefaultSort []Term
}

// Column returns the column a dimension filters on, empty for search
// category has no column of its own and filters on the job title
func (s Schema) Column(d filter.Dimension) string {
	switch d {
	case filter.Branch:
		return s.BranchCol
	case filter.JobTitle, filter.Category:
		return s.JobTitleCol
	case filter.Status:
		return s.StatusCol
	case filter.Period:
		return s.PeriodCol
	}
	return ""
}

// GroupExpr returns the expression a dimension's cardinality query groups by
func (s Schema) GroupExpr(d filter.Dimension) string {
	if d == filter.Period && s.PeriodLabel != "" {
		return s.PeriodLabel
	}
	return s.Column(d)
}

// PayrollSchema is the historic payroll records table
var PayrollSchema = Schema{
	Name:               "payroll",
	Table:              "payroll_records",
	IDCol:              "id",
	NameCol:            "employee_name",
	PeriodCol:          "period",
	SecondaryPeriodCol: "payment_date",
	BranchCol:          "branch",
	JobTitleCol:        "job_title",
	StatusCol:          "status",
	SearchCols:         []string{"employee_name", "employee_number", "curp", "rfc"},
	SelectCols: []string{
		"id", "employee_number", "employee_name", "curp", "rfc", "branch", "job_title", "status",
		"period", "payment_date", "gross_pay", "total_deductions", "net_pay",
	},
	PeriodLabel: "to_char(date_trunc('month', period), 'YYYY-MM')",
	Sort: []SortField{
		{ID: "name", Aliases: []string{"employee name", "nombre"}, Column: "employee_name"},
		{ID: "employeeNumber", Aliases: []string{"number", "numero empleado"}, Column: "employee_number", Numeric: true},
		{ID: "branch", Aliases: []string{"sucursal"}, Column: "branch"},
		{ID: "jobTitle", Aliases: []string{"job title", "puesto"}, Column: "job_title"},
		{ID: "status", Aliases: []string{"estado"}, Column: "status"},
		{ID: "period", Aliases: []string{"mes", "periodo"}, Column: "period"},
		{ID: "paymentDate", Aliases: []string{"fecha pago"}, Column: "payment_date"},
		{ID: "grossPay", Aliases: []string{"sueldo", "percepciones"}, Column: "gross_pay", Numeric: true},
		{ID: "totalDeductions", Aliases: []string{"deducciones"}, Column: "total_deductions", Numeric: true},
		{ID: "netPay", Aliases: []string{"neto", "total"}, Column: "net_pay", Numeric: true},
	},
	DefaultSort: []Term{{Expr: "period", Desc: true}, {Expr: "employee_name"}},
}

// FundsSchema is the savings fund movements table
var FundsSchema = Schema{
	Name:               "funds",
	Table:              "fund_records",
	IDCol:              "id",
	NameCol:            "employee_name",
	PeriodCol:          "period",
	SecondaryPeriodCol: "movement_date",
	BranchCol:          "branch",
	JobTitleCol:        "job_title",
	StatusCol:          "status",
	SearchCols:         []string{"employee_name", "employee_number"},
	SelectCols: []string{
		"id", "employee_number", "employee_name", "branch", "job_title", "status", "period",
		"movement_date", "opening_balance", "contributions", "withdrawals", "closing_balance",
	},
	PeriodLabel: "to_char(period, 'YYYY-MM-DD')",
	Sort: []SortField{
		{ID: "name", Aliases: []string{"employee name", "nombre"}, Column: "employee_name"},
		{ID: "employeeNumber", Aliases: []string{"number", "numero empleado"}, Column: "employee_number", Numeric: true},
		{ID: "branch", Aliases: []string{"sucursal"}, Column: "branch"},
		{ID: "jobTitle", Aliases: []string{"job title", "puesto"}, Column: "job_title"},
		{ID: "status", Aliases: []string{"estado"}, Column: "status"},
		{ID: "period", Aliases: []string{"fecha", "periodo"}, Column: "period"},
		{ID: "openingBalance", Aliases: []string{"saldo inicial"}, Column: "opening_balance", Numeric: true},
		{ID: "contributions", Aliases: []string{"aportaciones"}, Column: "contributions", Numeric: true},
		{ID: "withdrawals", Aliases: []string{"retiros"}, Column: "withdrawals", Numeric: true},
		{ID: "closingBalance", Aliases: []string{"saldo final", "saldo"}, Column: "closing_balance", Numeric: true},
	},
	DefaultSort: []Term{{Expr: "period", Desc: true}, {Expr: "employee_name"}},
}
