package validation

import "math"

// Sensor readings arrive from untrusted devices; every sample is range
// checked before it is queued for processing.

// ValidateTemperature accepts room temperatures in [0, 50] degrees C.
// Non-finite values are invalid regardless of bounds.
func ValidateTemperature(temp float64) error {
	if math.IsNaN(temp) || math.IsInf(temp, 0) {
		return newError(InvalidInput, "temperature must be a valid number")
	}
	if temp < 0 || temp > 50 {
		return newError(InvalidRange, "temperature %g is outside valid range (0-50)", temp)
	}
	return nil
}

// ValidateMotionLevel accepts motion percentages in [0, 100].
func ValidateMotionLevel(level int) error {
	if level < 0 || level > 100 {
		return newError(InvalidRange, "motion level %d is outside valid range (0-100)", level)
	}
	return nil
}

// ValidateSoundLevel accepts raw ADC sound levels in [0, 1023].
func ValidateSoundLevel(level int) error {
	if level < 0 || level > 1023 {
		return newError(InvalidRange, "sound level %d is outside valid range (0-1023)", level)
	}
	return nil
}

// ValidateLimit checks a pagination limit against (0, maxLimit].
func ValidateLimit(limit, maxLimit int) (int, error) {
	if limit <= 0 {
		return 0, newError(InvalidRange, "limit must be greater than 0")
	}
	if limit > maxLimit {
		return 0, newError(InvalidRange, "limit %d exceeds maximum of %d", limit, maxLimit)
	}
	return limit, nil
}

// ValidateTimeRangeMinutes checks a query window against (0, 10080] minutes
// (seven days).
func ValidateTimeRangeMinutes(minutes int64) error {
	if minutes <= 0 {
		return newError(InvalidRange, "time range must be positive")
	}
	if minutes > 10080 {
		return newError(InvalidRange, "time range cannot exceed 7 days (10080 minutes)")
	}
	return nil
}
