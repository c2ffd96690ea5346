// Package field turns raw text typed by the user into typed, range-checked
// values.
//
// Every parser takes a notify.Notifier and returns (value, ok). A rejected
// candidate produces exactly one error notification and ok=false; the caller
// discards the candidate and keeps its committed value. Nothing in this
// package returns an error or panics on bad input.
//
//	lat, ok := field.Number(n, "Latitude", raw, field.Between(-90, 90))
//	if !ok {
//	    return false
//	}
package field
