package domain

// Pointer constructors for optional fields. Absent source values stay nil so a
// missing stat is never confused with an observed zero.

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Float64Value dereferences p, returning 0 and false when absent.
func Float64Value(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// IntValue dereferences p, returning 0 and false when absent.
func IntValue(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Int64Value dereferences p, returning 0 and false when absent.
func Int64Value(p *int64) (int64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
