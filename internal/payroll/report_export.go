package payroll

import (
	"encoding/csv"
	"io"

	"github.com/xuri/excelize/v2"
)

// Column order is fixed; downstream spreadsheets depend on it.
var reportColumns = []string{
	"Employee",
	"Department",
	"Total Hours",
	"Overtime Hours",
	"Undertime Hours",
	"Base Salary",
	"Overtime Pay",
	"Undertime Deduction",
	"Staff House Deduction",
	"Total Salary",
	"Week Start",
	"Week End",
}

func reportRow(p PayslipResponse) []string {
	return []string{
		p.Username,
		p.Department,
		p.TotalHours.String(),
		p.OvertimeHours.String(),
		p.UndertimeHours.String(),
		p.BaseSalary.String(),
		p.OvertimePay.String(),
		p.UndertimeDeduction.String(),
		p.StaffHouseDeduction.String(),
		p.TotalSalary.String(),
		p.WeekStart,
		p.WeekEnd,
	}
}

func writeReportCSV(w io.Writer, rows []PayslipResponse) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(reportColumns); err != nil {
		return err
	}
	for _, p := range rows {
		if err := cw.Write(reportRow(p)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeReportXLSX(w io.Writer, rows []PayslipResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	for col, name := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for i, p := range rows {
		for col, value := range reportRow(p) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
