package models

import "time"

// BirthdayLayout is the only accepted textual form, DD.MM.YYYY.
const BirthdayLayout = "02.01.2006"

// Birthday is a validated calendar date. The time part is always UTC midnight.
type Birthday struct {
	date time.Time
}

func NewBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(BirthdayLayout, raw)
	if err != nil {
		return Birthday{}, validationError("birthday", "Invalid date format. Use DD.MM.YYYY")
	}
	return Birthday{date: t}, nil
}

func (b Birthday) Time() time.Time   { return b.date }
func (b Birthday) Month() time.Month { return b.date.Month() }
func (b Birthday) Day() int          { return b.date.Day() }

func (b Birthday) String() string {
	return b.date.Format(BirthdayLayout)
}

// occurrenceIn returns the birthday's date in the given year. Feb 29 falls
// back to Feb 28 when year is not a leap year.
func (b Birthday) occurrenceIn(year int) time.Time {
	day := b.Day()
	if b.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, b.Month(), day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
