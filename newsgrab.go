// Package newsgrab provides a content-extraction pipeline for social and
// news platforms. It searches a platform (Reddit, Google News) for items
// matching a query, fetches each item's document, reduces it to normalized
// text, and returns a URL-deduplicated result set that can be exported as
// CSV or kept in a local run history.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., reddit/, googlenews/, sqlite/).
package newsgrab
