// Package validation is the gate every structured input passes through before
// a handler runs. It validates request bodies and query parameters against
// declared schemas, normalizes what passes (trimming, type coercion,
// defaults), and collects every violation of what doesn't into a single
// structured error keyed by field path.
package validation
