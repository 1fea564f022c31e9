// Package rpeek is the pagination and prefetch-cache core of a hover-preview
// overlay for a link-aggregation site. A UI surface asks for "the next
// comment" or "the next reply" of a thread; rpeek decides which page to
// request, batches requests, works around collapsed "more" stubs, and
// memoizes rendered panel content per thread.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gjson/, http/, htmltomarkdown/).
package rpeek
