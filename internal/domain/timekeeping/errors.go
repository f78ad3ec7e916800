package timekeeping

import "errors"

// Timekeeping domain errors
var (
	// Punch ingestion errors
	ErrInvalidPunchRange = errors.New("punch time in must be before time out")
	ErrPunchTooLong      = errors.New("punch exceeds the 24 hour sanity bound")
	ErrPunchNotFound     = errors.New("punch not found")

	// Daily record errors
	ErrDailyNotFound    = errors.New("daily timekeeping record not found")
	ErrOverrideNotFound = errors.New("timekeeping override not found")

	// General errors
	ErrAccountRequired = errors.New("account id is required")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidRange    = errors.New("from date must not be after to date")
)
