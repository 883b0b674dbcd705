package gallery

import "strconv"

// SentinelDateInt is the "no lower bound" taken-time value, an hour bucket
// in the year 1800. Rows never carry a taken time below it.
const SentinelDateInt int64 = 1800010100

// DateInt compacts an ISO-ish date-time string into the integer hour bucket
// YYYYMMDDHH used as the sort and comparison key for taken times.
//
// Strings of length >= 13 contribute their hour digits; date-only strings
// default the hour bucket to 00. Empty or too-short strings map to
// SentinelDateInt. The slicing is deliberately positional and does not
// validate the calendar fields; a malformed but long-enough string yields
// whatever integer its digit positions spell out.
func DateInt(s string) int64 {
	if len(s) < 10 {
		return SentinelDateInt
	}

	// YYYY-MM-DD[THH...]
	digits := s[0:4] + s[5:7] + s[8:10]
	if len(s) >= 13 {
		digits += s[11:13]
	} else {
		digits += "00"
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return SentinelDateInt
	}
	return n
}
