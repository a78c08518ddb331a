// Package calendar provides the proleptic Gregorian calendar arithmetic shared
// by every temporal type: conversion between civil dates and a linear day
// count, between clock fields and a linear tick count, leap-year rules, and
// month-end clamping.
//
// Day counts are relative to 1970-01-01 (day 0). The conversions are based on
// the date2j and j2date functions in PostgreSQL, which implement the
// Fliegel–Van Flandern Julian day transform without looping over months.
//
// Nothing here validates its inputs. Callers range-check fields before
// calling in.
package calendar

import "golang.org/x/exp/constraints"

// Clock and calendar unit constants.
const (
	MonthsPerYear    = 12
	HoursPerDay      = 24
	MinutesPerHour   = 60
	SecondsPerMinute = 60
	DaysPerWeek      = 7
)

// A tick is 100 nanoseconds, the finest unit that keeps a timestamp spanning
// the years -4712 through 9999 inside a single int64.
const (
	// FractionDigits is the number of decimal fraction-of-second digits a
	// tick can represent.
	FractionDigits = 7

	NanosPerTick   int64 = 100
	TicksPerSecond int64 = 10_000_000
	TicksPerMinute       = TicksPerSecond * SecondsPerMinute
	TicksPerHour         = TicksPerMinute * MinutesPerHour
	TicksPerDay          = TicksPerHour * HoursPerDay
)

// unixEpochJulian is the Julian day number of 1970-01-01.
const unixEpochJulian = 2440588

// EpochDayOfWeek is the day of week of day 0 (1970-01-01, a Thursday) with
// Sunday as 0.
const EpochDayOfWeek = 4

//nolint:gochecknoglobals
var daysInMonth = [2][13]int{
	{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
	{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
}

// IsLeapYear reports whether year is a leap year under the Gregorian rule.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int64, month int) int {
	if month == 2 && IsLeapYear(year) {
		return daysInMonth[1][month]
	}
	return daysInMonth[0][month]
}

// julianDay is based on the date2j function in PostgreSQL. Valid for years
// greater than -4800.
func julianDay(year int64, month, day int) int64 {
	m := int64(month)
	if m > 2 {
		m++
		year += 4800
	} else {
		m += 13
		year += 4799
	}

	century := year / 100
	jd := year*365 - 32167
	jd += year/4 - century + century/4
	jd += 7834*m/256 + int64(day)

	return jd
}

// civilFromJulian is based on the j2date function in PostgreSQL. Valid for
// non-negative Julian day numbers.
func civilFromJulian(j int64) (int64, int, int) {
	jd := uint64(j) + 32044
	quad := jd / 146097
	extra := (jd-quad*146097)*4 + 3
	jd += 60 + quad*3 + extra/146097
	quad = jd / 1461
	jd -= quad * 1461
	y := jd * 4 / 1461
	if y != 0 {
		jd = (jd + 305) % 365
	} else {
		jd = (jd + 306) % 366
	}
	jd += 123
	y += quad * 4
	quad = jd * 2141 / 65536

	return int64(y) - 4800, int((quad+10)%12 + 1), int(jd - 7834*quad/256)
}

// DaysFromCivil returns the number of days between 1970-01-01 and the civil
// date year-month-day.
func DaysFromCivil(year int64, month, day int) int64 {
	return julianDay(year, month, day) - unixEpochJulian
}

// CivilFromDays returns the civil date days after 1970-01-01. It is the
// exact inverse of DaysFromCivil.
func CivilFromDays(days int64) (year int64, month, day int) {
	return civilFromJulian(days + unixEpochJulian)
}

// DayOfWeek returns the day of week of days, with Sunday as 0 and Saturday
// as 6.
func DayOfWeek(days int64) int {
	return int(FloorMod(days+EpochDayOfWeek, DaysPerWeek))
}

// ISODayOfWeek returns the ISO 8601 day of week of days, with Monday as 1
// and Sunday as 7.
func ISODayOfWeek(days int64) int {
	if dow := DayOfWeek(days); dow != 0 {
		return dow
	}
	return DaysPerWeek
}

// DayOfYear returns the ordinal day (1-366) of year-month-day.
func DayOfYear(year int64, month, day int) int {
	return int(DaysFromCivil(year, month, day)-DaysFromCivil(year, 1, 1)) + 1
}

// AddMonths shifts year-month by months and clamps day to the last day of
// the target month when the target month is shorter. Negative months move
// backward. The returned year is not range-checked.
func AddMonths(year int64, month, day int, months int64) (int64, int, int) {
	total := year*MonthsPerYear + int64(month-1) + months
	y := FloorDiv(total, MonthsPerYear)
	m := int(FloorMod(total, MonthsPerYear)) + 1
	if last := DaysInMonth(y, m); day > last {
		day = last
	}
	return y, m, day
}

// TicksFromClock converts clock fields into ticks since midnight. frac is
// already expressed in ticks.
func TicksFromClock(hour, minute, second int, frac int64) int64 {
	return int64(hour)*TicksPerHour +
		int64(minute)*TicksPerMinute +
		int64(second)*TicksPerSecond +
		frac
}

// ClockFromTicks splits a non-negative tick count into hours, minutes,
// seconds, and remaining ticks. Hours are not reduced modulo a day.
func ClockFromTicks(ticks int64) (hour int64, minute, second int, frac int64) {
	hour = ticks / TicksPerHour
	ticks -= hour * TicksPerHour
	minute = int(ticks / TicksPerMinute)
	ticks -= int64(minute) * TicksPerMinute
	second = int(ticks / TicksPerSecond)
	frac = ticks - int64(second)*TicksPerSecond
	return hour, minute, second, frac
}

// Pow10 returns 10**n for 0 <= n <= 18.
func Pow10(n int) int64 {
	p := int64(1)
	for range n {
		p *= 10
	}
	return p
}

// PrecisionUnit returns the number of ticks in one unit of the last
// significant fraction digit at precision, which must be between 0 and
// FractionDigits.
func PrecisionUnit(precision int) int64 {
	return Pow10(FractionDigits - precision)
}

// RoundTicks rounds ticks to precision fraction digits, rounding halves away
// from zero.
func RoundTicks(ticks int64, precision int) int64 {
	unit := PrecisionUnit(precision)
	if unit == 1 {
		return ticks
	}
	half := unit / 2
	if ticks < 0 {
		return -((-ticks + half) / unit * unit)
	}
	return (ticks + half) / unit * unit
}

// TruncateTicks truncates ticks toward zero to precision fraction digits.
func TruncateTicks(ticks int64, precision int) int64 {
	unit := PrecisionUnit(precision)
	return ticks / unit * unit
}

// FloorDiv returns a/b rounded toward negative infinity.
func FloorDiv[T constraints.Signed](a, b T) T {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// FloorMod returns the remainder of FloorDiv(a, b), which has the sign of b.
func FloorMod[T constraints.Signed](a, b T) T {
	return a - FloorDiv(a, b)*b
}
