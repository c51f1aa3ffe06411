package healthx

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError is a user-facing input problem detected before any
// network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Inclusive bounds for measurement inputs.
const (
	MinHeightCM    = 80
	MaxHeightCM    = 250
	MinWeightKG    = 20
	MaxWeightKG    = 250
	MinAge         = 1
	MaxAge         = 120
	MinRestingBPM  = 30
	MaxRestingBPM  = 120
	MaxWaterAmount = 5000
)

// CheckHeight validates a height in centimetres.
func CheckHeight(h float64) error {
	if h < MinHeightCM || h > MaxHeightCM {
		return Invalid("height", "height must be between %d and %d cm", MinHeightCM, MaxHeightCM)
	}
	return nil
}

// CheckWeight validates a weight in kilograms.
func CheckWeight(w float64) error {
	if w < MinWeightKG || w > MaxWeightKG {
		return Invalid("weight", "weight must be between %d and %d kg", MinWeightKG, MaxWeightKG)
	}
	return nil
}

// CheckAge validates an age in whole years.
func CheckAge(a int) error {
	if a < MinAge || a > MaxAge {
		return Invalid("age", "age must be between %d and %d", MinAge, MaxAge)
	}
	return nil
}

// CheckRestingHeartRate validates a resting heart rate in bpm.
func CheckRestingHeartRate(bpm int) error {
	if bpm < MinRestingBPM || bpm > MaxRestingBPM {
		return Invalid("restingHeartRate", "resting heart rate must be between %d and %d bpm", MinRestingBPM, MaxRestingBPM)
	}
	return nil
}

// CheckWaterAmount validates a single water log in millilitres.
func CheckWaterAmount(ml int) error {
	if ml <= 0 || ml > MaxWaterAmount {
		return Invalid("amount", "amount must be between 1 and %d ml", MaxWaterAmount)
	}
	return nil
}

// CheckGender accepts "male" or "female".
func CheckGender(g string) error {
	if g != GenderMale && g != GenderFemale {
		return Invalid("gender", "gender must be %q or %q", GenderMale, GenderFemale)
	}
	return nil
}
