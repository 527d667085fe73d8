package service

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// DisplayLayout renders a date the way the dashboard grid shows it, e.g. "28 July 2003".
const DisplayLayout = "2 January 2006"

// DisplayDate formats the calendar date of dob in loc. dob is a date without
// a time of day, so only its year, month and day are used and the day never
// shifts with the location's offset.
func DisplayDate(dob time.Time, loc *time.Location) string {
	return time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, loc).Format(DisplayLayout)
}

// Age returns the number of whole years between dob and the calendar day that
// now falls on in loc.
func Age(dob, now time.Time, loc *time.Location) int {
	today := now.In(loc)
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// LoadDisplayLocation resolves the IANA zone the dashboard computes ages in.
func LoadDisplayLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load display timezone %q: %w", name, err)
	}
	return loc, nil
}
