// Package matcher scores how well a display name answers a launcher query.
//
// Matches and Score are pure functions shared by every source. Both sides
// are NFC-normalized and case-folded before comparison, so "É" typed as a
// decomposed sequence still matches a precomposed name.
package matcher
