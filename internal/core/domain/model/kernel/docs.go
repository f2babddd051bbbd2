// Package kernel holds the value objects shared by every aggregate of the
// food-ordering core: identifiers (UUID) and geographic points (GeoPoint).
//
// Both types are immutable, safe for concurrent use, and invalid in their zero
// value; use the constructors.
package kernel
