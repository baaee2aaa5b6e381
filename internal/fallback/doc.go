// Package fallback builds deterministic learning plans and explanations
// used when generated output is unavailable or rejected.
package fallback
