// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"strconv"
	"strings"
)

// Atoi64Default converts a string to an int64, ignoring surrounding
// whitespace. If the string cannot be parsed as an integer, a float parse is
// attempted before falling back to the provided default, so spreadsheet
// cells rendered in scientific notation (e.g. "1.7559e+12") still resolve.
//
// Example:
//
//	n := utils.Atoi64Default("42", 0)    // returns 42
//	n = utils.Atoi64Default("", 10)      // returns 10
//	n = utils.Atoi64Default("1.5e+3", 0) // returns 1500
//	n = utils.Atoi64Default("x", 5)      // returns 5
func Atoi64Default(s string, def int64) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return def
}
