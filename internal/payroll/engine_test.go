package payroll_test

import (
	"testing"
	"time"

	"timeclock/internal/payroll"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		"want %s, got %s", want, got.String())
}

func day(hour, minute int) time.Time {
	return time.Date(2026, 8, 24, hour, minute, 0, 0, time.UTC)
}

func TestCompute_FullShiftWithStaffHouse(t *testing.T) {
	p := payroll.DefaultPolicy(payroll.UndertimeRuleShortfall)

	bd := p.Compute([]payroll.WorkSession{
		{ClockIn: day(7, 0), ClockOut: day(15, 30)},
	}, true)

	assertDecimal(t, "8", bd.TotalHours)
	assertDecimal(t, "0", bd.OvertimeHours)
	assertDecimal(t, "0", bd.UndertimeHours)
	assertDecimal(t, "200", bd.BaseSalary)
	assertDecimal(t, "250", bd.StaffHouseDeduction)
	assertDecimal(t, "-50", bd.TotalSalary)
}

func TestCompute_ApprovedOvertimePastGrace(t *testing.T) {
	p := payroll.DefaultPolicy(payroll.UndertimeRuleShortfall)

	bd := p.Compute([]payroll.WorkSession{
		{
			ClockIn:           day(7, 0),
			ClockOut:          day(17, 0),
			OvertimeRequested: true,
			OvertimeApproved:  true,
		},
	}, false)

	// Full shift credit plus the half hour past the 30-minute grace window.
	assertDecimal(t, "8", bd.TotalHours)
	assertDecimal(t, "0.5", bd.OvertimeHours)
	assertDecimal(t, "17.5", bd.OvertimePay)
	assertDecimal(t, "217.5", bd.TotalSalary)
}

func TestCompute_ApprovedOvertimeAtShiftEnd_NoOvertime(t *testing.T) {
	p := payroll.DefaultPolicy(payroll.UndertimeRuleShortfall)

	bd := p.Compute([]payroll.WorkSession{
		{
			ClockIn:           day(7, 0),
			ClockOut:          day(15, 30),
			OvertimeRequested: true,
			OvertimeApproved:  true,
		},
	}, false)

	assertDecimal(t, "0", bd.OvertimeHours)
	assertDecimal(t, "8.5", bd.TotalHours)
}

func TestCompute_ExactEightHours_NoUndertime(t *testing.T) {
	p := payroll.DefaultPolicy(payroll.UndertimeRuleShortfall)

	bd := p.Compute([]payroll.WorkSession{
		{ClockIn: day(7, 0), ClockOut: day(15, 0)},
	}, false)

	assertDecimal(t, "8", bd.TotalHours)
	assertDecimal(t, "0", bd.UndertimeHours)
	assertDecimal(t, "200", bd.TotalSalary)
}

func TestCompute_ShortfallUndertime(t *testing.T) {
	p := payroll.DefaultPolicy(payroll.UndertimeRuleShortfall)

	bd := p.Compute([]payroll.WorkSession{
		{ClockIn: day(8, 0), ClockOut: day(15, 0)},
	}, false)

	assertDecimal(t, "7", bd.TotalHours)
	assertDecimal(t, "1", bd.UndertimeHours)
	assertDecimal(t, "25", bd.UndertimeDeduction)
	assertDecimal(t, "150", bd.TotalSalary)
}

func TestCompute_BoundaryRuleStacksLatenessAndEarlyOut(t *testing.T) {
	p := payroll.DefaultPolicy(payroll.UndertimeRuleBoundary)

	bd := p.Compute([]payroll.WorkSession{
		{ClockIn: day(8, 0), ClockOut: day(15, 0)},
	}, false)

	// 1h shortfall + 1h lateness + 0.5h early departure.
	assertDecimal(t, "7", bd.TotalHours)
	assertDecimal(t, "2.5", bd.UndertimeHours)
	assertDecimal(t, "62.5", bd.UndertimeDeduction)
	assertDecimal(t, "112.5", bd.TotalSalary)
}

func TestCompute_MalformedSessionSkipped(t *testing.T) {
	p := payroll.DefaultPolicy(payroll.UndertimeRuleShortfall)

	bd := p.Compute([]payroll.WorkSession{
		{ClockIn: day(9, 0), ClockOut: day(9, 0)},
		{ClockIn: day(10, 0), ClockOut: day(8, 0)},
	}, false)

	assertDecimal(t, "0", bd.TotalHours)
	assertDecimal(t, "0", bd.UndertimeHours)
	assertDecimal(t, "0", bd.TotalSalary)
	assert.Nil(t, bd.FirstClockIn)
	assert.Nil(t, bd.LastClockOut)
}

func TestCompute_WeeklyBaseCap(t *testing.T) {
	p := payroll.DefaultPolicy(payroll.UndertimeRuleShortfall)

	sessions := make([]payroll.WorkSession, 0, 6)
	for d := 0; d < 6; d++ {
		in := time.Date(2026, 8, 24+d, 7, 0, 0, 0, time.UTC)
		sessions = append(sessions, payroll.WorkSession{
			ClockIn:  in,
			ClockOut: in.Add(8*time.Hour + 30*time.Minute),
		})
	}

	bd := p.Compute(sessions, false)

	assertDecimal(t, "48", bd.TotalHours)
	// Base pay stops at 40 hours even though 48 were credited.
	assertDecimal(t, "1000", bd.BaseSalary)
}

func TestCompute_SalaryIdentity(t *testing.T) {
	p := payroll.DefaultPolicy(payroll.UndertimeRuleBoundary)

	bd := p.Compute([]payroll.WorkSession{
		{ClockIn: day(7, 15), ClockOut: day(14, 45)},
		{
			ClockIn:           day(7, 0).AddDate(0, 0, 1),
			ClockOut:          day(18, 0).AddDate(0, 0, 1),
			OvertimeRequested: true,
			OvertimeApproved:  true,
		},
	}, true)

	want := bd.BaseSalary.
		Add(bd.OvertimePay).
		Sub(bd.UndertimeDeduction).
		Sub(bd.StaffHouseDeduction)
	assert.True(t, want.Equal(bd.TotalSalary),
		"identity broken: want %s, got %s", want.String(), bd.TotalSalary.String())
}

func TestCompute_SessionOrderDoesNotMatter(t *testing.T) {
	p := payroll.DefaultPolicy(payroll.UndertimeRuleShortfall)

	a := payroll.WorkSession{ClockIn: day(7, 0), ClockOut: day(15, 30)}
	b := payroll.WorkSession{ClockIn: day(8, 0).AddDate(0, 0, 1), ClockOut: day(15, 0).AddDate(0, 0, 1)}

	fwd := p.Compute([]payroll.WorkSession{a, b}, false)
	rev := p.Compute([]payroll.WorkSession{b, a}, false)

	assert.True(t, fwd.TotalSalary.Equal(rev.TotalSalary))
	assert.True(t, fwd.UndertimeHours.Equal(rev.UndertimeHours))
	assert.Equal(t, fwd.FirstClockIn.Unix(), rev.FirstClockIn.Unix())
	assert.Equal(t, fwd.LastClockOut.Unix(), rev.LastClockOut.Unix())
}

func TestParseUndertimeRule(t *testing.T) {
	rule, err := payroll.ParseUndertimeRule("")
	assert.NoError(t, err)
	assert.Equal(t, payroll.UndertimeRuleShortfall, rule)

	rule, err = payroll.ParseUndertimeRule("boundary")
	assert.NoError(t, err)
	assert.Equal(t, payroll.UndertimeRuleBoundary, rule)

	_, err = payroll.ParseUndertimeRule("strict")
	assert.Error(t, err)
}
