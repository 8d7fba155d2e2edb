package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	nameCharsPattern  = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	birthMaskPattern  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	emailShapePattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	bonusMaskPattern  = regexp.MustCompile(`^\(\d{2}\)\s?\d{4,5}-?\d{4}$`)
)

// timeNow is swapped in tests that pin "today" for age checks.
var timeNow = time.Now

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Name: letters (including accented) and spaces only.
	v.RegisterValidation("namechars", func(fl validator.FieldLevel) bool {
		return nameCharsPattern.MatchString(fl.Field().String())
	})

	// Name: at least two non-empty space-separated tokens (first + last).
	v.RegisterValidation("fulltokens", func(fl validator.FieldLevel) bool {
		return len(strings.Fields(fl.Field().String())) >= 2
	})

	// Birth date in dd/mm/aaaa display form.
	v.RegisterValidation("datemask", func(fl validator.FieldLevel) bool {
		return birthMaskPattern.MatchString(fl.Field().String())
	})

	// Birth date must be a real calendar date (rejects e.g. 31/02).
	v.RegisterValidation("realdate", func(fl validator.FieldLevel) bool {
		_, ok := parseBRDate(fl.Field().String())
		return ok
	})

	// Age derived from a dd/mm/aaaa date must be between 16 and 100.
	v.RegisterValidation("agebr", func(fl validator.FieldLevel) bool {
		date, ok := parseBRDate(fl.Field().String())
		if !ok {
			return true // realdate already reported the problem
		}
		return ageInRange(date)
	})

	// Digits-only Brazilian phone: DDD plus 8 or 9 digits.
	v.RegisterValidation("brphone", func(fl validator.FieldLevel) bool {
		n := len(fl.Field().String())
		return n >= 10 && n <= 11
	})

	// 11-digit mobiles must carry the leading 9 after the DDD.
	v.RegisterValidation("mobile9", func(fl validator.FieldLevel) bool {
		digits := fl.Field().String()
		if len(digits) != 11 {
			return true
		}
		return digits[2] == '9'
	})

	// Loose local@domain.tld shape, as the gateway checks it.
	v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShapePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	// Storage-form date, yyyy-mm-dd.
	v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	// Age derived from a yyyy-mm-dd date must be between 16 and 100.
	v.RegisterValidation("ageiso", func(fl validator.FieldLevel) bool {
		date, err := time.Parse("2006-01-02", fl.Field().String())
		if err != nil {
			return true
		}
		return ageInRange(date)
	})

	return v
}

func parseBRDate(s string) (time.Time, bool) {
	if !birthMaskPattern.MatchString(s) {
		return time.Time{}, false
	}
	parts := strings.Split(s, "/")
	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

// ageInRange accepts births between 16 and 100 full years ago, both ends
// day-exact: the 16th birthday counts, one day past the 100th does not.
func ageInRange(birth time.Time) bool {
	now := timeNow()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	earliest := today.AddDate(-100, 0, 0)
	latest := today.AddDate(-16, 0, 0)
	return !birth.Before(earliest) && !birth.After(latest)
}
