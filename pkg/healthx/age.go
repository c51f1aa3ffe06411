package healthx

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// DeriveAge prefers a raw age override in [1, 129] and otherwise counts
// whole years from birthDate to now. ok is false when neither source is
// usable.
func DeriveAge(raw *int, birthDate string, now time.Time) (int, bool) {
	if raw != nil && *raw > 0 && *raw < 130 {
		return *raw, true
	}
	if birthDate == "" {
		return 0, false
	}

	born, err := time.Parse(DateLayout, birthDate)
	if err != nil {
		return 0, false
	}

	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}

// CheckBirthDate requires a YYYY-MM-DD date that is not in the future.
func CheckBirthDate(birthDate string, now time.Time) error {
	if birthDate == "" {
		return Invalid("birthDate", "birth date is required")
	}
	born, err := time.Parse(DateLayout, birthDate)
	if err != nil {
		return Invalid("birthDate", "birth date must look like 1995-01-31")
	}
	if born.After(now) {
		return Invalid("birthDate", "birth date is in the future")
	}
	return nil
}
