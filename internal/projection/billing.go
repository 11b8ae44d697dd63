// Package projection implements the billing-cycle projection engine: the
// pure mapping from cards and transactions to a 12-month forward view of
// what each statement will charge.
package projection

import "time"

// FirstBillingMonth computes the statement month that receives the first
// installment (or the first recurring charge) of a purchase made on origin.
//
// A purchase on or after the card's closing date rolls to the next calendar
// month's statement; before it, the purchase bills in its own month. The
// comparison is made on whole calendar days. The returned date carries
// dueDay as its day-of-month for display; only the year and month are
// meaningful downstream, so callers compare via MonthStart.
func FirstBillingMonth(origin time.Time, closingDay, dueDay int) time.Time {
	year, month, day := origin.Date()
	originDate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	closing := time.Date(year, month, clampDay(year, month, closingDay), 0, 0, 0, 0, time.UTC)

	if !originDate.Before(closing) {
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return time.Date(year, month, clampDay(year, month, dueDay), 0, 0, 0, 0, time.UTC)
}

// MonthStart normalizes t to the first day of its calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// clampDay bounds day to the last valid day of the given month, so a
// closing day of 31 lands on Feb 28/29 instead of rolling into March.
func clampDay(year int, month time.Month, day int) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}

// monthsBetween returns how many whole calendar months separate two
// month-start dates (b - a).
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
