// Package parsing canonicalizes free-text profile input into the comparable
// skill vocabulary used by scoring.
package parsing
