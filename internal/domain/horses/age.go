package horses

import (
	"fmt"
	"time"
)

// Age devuelve la edad legible derivada de la fecha de nacimiento
// ("3 years", "1 year and 2 months", "5 months"). Nunca se almacena.
func Age(birthDate *time.Time, now time.Time) string {
	if birthDate == nil || birthDate.After(now) {
		return "unknown"
	}

	years := now.Year() - birthDate.Year()
	months := int(now.Month()) - int(birthDate.Month())
	if now.Day() < birthDate.Day() {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}

	if years == 0 {
		if months <= 1 {
			return "1 month"
		}
		return fmt.Sprintf("%d months", months)
	}

	yearPart := fmt.Sprintf("%d years", years)
	if years == 1 {
		yearPart = "1 year"
	}
	if months == 0 {
		return yearPart
	}

	monthPart := fmt.Sprintf("%d months", months)
	if months == 1 {
		monthPart = "1 month"
	}
	return yearPart + " and " + monthPart
}
