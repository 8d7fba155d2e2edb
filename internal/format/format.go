// Package format holds the input masks used by the signup and quiz forms.
// Every function is pure: invalid or partial input yields a partial mask,
// never an error.
package format

import "strings"

// NormalizePhone strips everything that is not a digit. The digits-only
// string is what gets validated and persisted.
func NormalizePhone(display string) string {
	var b strings.Builder
	for _, r := range display {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// FormatPhone masks a Brazilian phone number as the user types:
// "(DD) NNNNN-NNNN" for 11 digits, progressively shorter masks for fewer.
// Anything past 11 digits is dropped.
func FormatPhone(raw string) string {
	numbers := NormalizePhone(raw)

	switch {
	case len(numbers) <= 2:
		return numbers
	case len(numbers) <= 7:
		return "(" + numbers[:2] + ") " + numbers[2:]
	case len(numbers) <= 11:
		return "(" + numbers[:2] + ") " + numbers[2:7] + "-" + numbers[7:]
	default:
		return "(" + numbers[:2] + ") " + numbers[2:7] + "-" + numbers[7:11]
	}
}

// FormatPhoneShort is the completion-page variant of the phone mask: numbers
// with up to 10 digits keep the 8-digit local format "(DD) NNNN-NNNN".
func FormatPhoneShort(raw string) string {
	numbers := NormalizePhone(raw)

	switch {
	case len(numbers) <= 2:
		return numbers
	case len(numbers) <= 6:
		return "(" + numbers[:2] + ") " + numbers[2:]
	case len(numbers) <= 10:
		return "(" + numbers[:2] + ") " + numbers[2:6] + "-" + numbers[6:]
	default:
		return "(" + numbers[:2] + ") " + numbers[2:7] + "-" + numbers[7:11]
	}
}

// FormatBirthDate masks a date as dd/mm/yyyy, capping at 8 digits.
func FormatBirthDate(raw string) string {
	numbers := NormalizePhone(raw)
	if len(numbers) > 8 {
		numbers = numbers[:8]
	}

	switch {
	case len(numbers) <= 2:
		return numbers
	case len(numbers) <= 4:
		return numbers[:2] + "/" + numbers[2:]
	default:
		return numbers[:2] + "/" + numbers[2:4] + "/" + numbers[4:]
	}
}

// ToISODate rearranges dd/mm/yyyy into yyyy-mm-dd for storage. It performs
// no calendar validation; input that is not a three-part date is returned
// unchanged.
func ToISODate(brDate string) string {
	parts := strings.Split(brDate, "/")
	if len(parts) != 3 {
		return brDate
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}
