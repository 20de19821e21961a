// Package builder assembles canonical value lists and relation maps from
// legacy attribute and relation rows.
//
// Text values are routed by attribute: the filter attribute through the
// filter translator, the selector attribute through the selector
// translator, everything else through the text normalizer. A translation
// failure here is not an error. The raw text is kept and the failure is
// reported to the Observer as a DegradedValue, so one bad row never aborts
// a batch.
//
// Builders hold no mutable state of their own. They are safe for
// concurrent use when their Generator and Observer are.
package builder
