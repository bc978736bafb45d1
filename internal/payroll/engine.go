package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// UndertimeRule selects which of the two historical undertime formulas the
// engine applies. "shortfall" penalizes hours below a full 8-hour shift;
// "boundary" additionally penalizes minutes outside the fixed 07:00-15:30
// window.
type UndertimeRule string

const (
	UndertimeRuleShortfall UndertimeRule = "shortfall"
	UndertimeRuleBoundary  UndertimeRule = "boundary"
)

func ParseUndertimeRule(s string) (UndertimeRule, error) {
	switch UndertimeRule(s) {
	case UndertimeRuleShortfall, UndertimeRuleBoundary:
		return UndertimeRule(s), nil
	case "":
		return UndertimeRuleShortfall, nil
	default:
		return "", fmt.Errorf("unknown undertime rule: %q", s)
	}
}

type ClockTime struct {
	Hour   int
	Minute int
}

// Policy holds every pay constant the engine needs. Rates are per hour,
// StaffHouseDeduction is per week.
type Policy struct {
	HourlyRate          decimal.Decimal
	OvertimeRate        decimal.Decimal
	UndertimeRate       decimal.Decimal
	StaffHouseDeduction decimal.Decimal
	ShiftStart          ClockTime
	ShiftEnd            ClockTime
	FullShiftHours      decimal.Decimal
	WeeklyBaseCapHours  decimal.Decimal
	OvertimeGrace       time.Duration
	UndertimeRule       UndertimeRule
}

func DefaultPolicy(rule UndertimeRule) Policy {
	return Policy{
		HourlyRate:          decimal.NewFromInt(25),
		OvertimeRate:        decimal.NewFromInt(35),
		UndertimeRate:       decimal.NewFromInt(25),
		StaffHouseDeduction: decimal.NewFromInt(250),
		ShiftStart:          ClockTime{Hour: 7},
		ShiftEnd:            ClockTime{Hour: 15, Minute: 30},
		FullShiftHours:      decimal.NewFromInt(8),
		WeeklyBaseCapHours:  decimal.NewFromInt(40),
		OvertimeGrace:       30 * time.Minute,
		UndertimeRule:       rule,
	}
}

// WorkSession is one completed clock-in/clock-out pair.
type WorkSession struct {
	ClockIn           time.Time
	ClockOut          time.Time
	OvertimeRequested bool
	OvertimeApproved  bool
}

// Breakdown is the engine output for one user's week. TotalSalary always
// equals BaseSalary + OvertimePay - UndertimeDeduction - StaffHouseDeduction
// and may be negative.
type Breakdown struct {
	TotalHours          decimal.Decimal
	OvertimeHours       decimal.Decimal
	UndertimeHours      decimal.Decimal
	BaseSalary          decimal.Decimal
	OvertimePay         decimal.Decimal
	UndertimeDeduction  decimal.Decimal
	StaffHouseDeduction decimal.Decimal
	TotalSalary         decimal.Decimal
	FirstClockIn        *time.Time
	LastClockOut        *time.Time
}

// Compute is pure: the same sessions and flags always produce the same
// breakdown, and session order does not matter.
func (p Policy) Compute(sessions []WorkSession, staffHouse bool) Breakdown {
	var (
		total     = decimal.Zero
		overtime  = decimal.Zero
		undertime = decimal.Zero
		firstIn   *time.Time
		lastOut   *time.Time
	)

	for _, s := range sessions {
		worked := hoursBetween(s.ClockIn, s.ClockOut)
		// A session whose clock-out is not after its clock-in cannot
		// contribute; without this guard a malformed row would drag the
		// totals negative.
		if worked.Sign() <= 0 {
			continue
		}

		in, out := s.ClockIn, s.ClockOut
		if firstIn == nil || in.Before(*firstIn) {
			firstIn = &in
		}
		if lastOut == nil || out.After(*lastOut) {
			lastOut = &out
		}

		if s.OvertimeRequested && s.OvertimeApproved {
			shiftEnd := clockOn(s.ClockIn, p.ShiftEnd)
			if s.ClockOut.After(shiftEnd) {
				// An approved overtime shift is credited as a full base
				// shift regardless of the hours actually worked.
				total = total.Add(p.FullShiftHours)

				// Overtime accrues only past the grace window, and never
				// before the nominal shift end.
				overtimeStart := s.ClockOut.Add(-p.OvertimeGrace)
				if overtimeStart.Before(shiftEnd) {
					overtimeStart = shiftEnd
				}
				overtime = overtime.Add(hoursBetween(overtimeStart, s.ClockOut))
			} else {
				// Approved but never worked past the shift end: treated as a
				// normal shift. The shortfall formula credits the raw hours
				// here, the boundary formula caps them.
				if p.UndertimeRule == UndertimeRuleBoundary {
					total = total.Add(decimal.Min(worked, p.FullShiftHours))
				} else {
					total = total.Add(worked)
				}
			}
		} else {
			total = total.Add(decimal.Min(worked, p.FullShiftHours))
			if worked.LessThan(p.FullShiftHours) {
				undertime = undertime.Add(p.FullShiftHours.Sub(worked))
			}
		}

		if p.UndertimeRule == UndertimeRuleBoundary {
			// Lateness after 07:00 and departure before 15:30 stack on top
			// of the shortfall above, so a short day can be penalized twice.
			// Known historical double-count, kept as-is.
			shiftStart := clockOn(s.ClockIn, p.ShiftStart)
			if s.ClockIn.After(shiftStart) {
				undertime = undertime.Add(hoursBetween(shiftStart, s.ClockIn))
			}
			shiftEnd := clockOn(s.ClockIn, p.ShiftEnd)
			if s.ClockOut.Before(shiftEnd) {
				undertime = undertime.Add(hoursBetween(s.ClockOut, shiftEnd))
			}
		}
	}

	base := decimal.Min(total, p.WeeklyBaseCapHours).Mul(p.HourlyRate)
	overtimePay := overtime.Mul(p.OvertimeRate)
	undertimeDeduction := undertime.Mul(p.UndertimeRate)
	houseDeduction := decimal.Zero
	if staffHouse {
		houseDeduction = p.StaffHouseDeduction
	}

	return Breakdown{
		TotalHours:          total,
		OvertimeHours:       overtime,
		UndertimeHours:      undertime,
		BaseSalary:          base,
		OvertimePay:         overtimePay,
		UndertimeDeduction:  undertimeDeduction,
		StaffHouseDeduction: houseDeduction,
		// Not floored: a week of deductions can legitimately go below zero.
		TotalSalary:  base.Add(overtimePay).Sub(undertimeDeduction).Sub(houseDeduction),
		FirstClockIn: firstIn,
		LastClockOut: lastOut,
	}
}

var msPerHour = decimal.NewFromInt(3_600_000)

func hoursBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(to.Sub(from).Milliseconds()).Div(msPerHour)
}

// clockOn pins a wall-clock time onto the calendar day of ref.
func clockOn(ref time.Time, c ClockTime) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), c.Hour, c.Minute, 0, 0, ref.Location())
}
