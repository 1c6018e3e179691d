package timezone

import "time"

const DefaultTimezone = "Europe/Paris"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// Clock returns a time source reading wall time in loc.
func Clock(loc *time.Location) func() time.Time {
	if loc == nil {
		loc = Location(DefaultTimezone)
	}
	return func() time.Time { return time.Now().In(loc) }
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate reads a YYYY-MM-DD calendar day, stored at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// ParseClock validates an HH:MM time of day.
func ParseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}

// At combines a calendar day and an HH:MM clock in loc.
func At(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
