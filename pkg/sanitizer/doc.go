// Package sanitizer normalizes user-entered catalog and loan fields before
// validation and storage.
//
// All functions are idempotent and handle empty input gracefully, returning
// empty strings rather than errors. Titles, authors, categories and student
// fields get whitespace normalization; ISBNs are only trimmed so substring
// search over them stays literal.
package sanitizer
