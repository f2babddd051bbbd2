// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries so that a zero value can be told apart from an instance
// built through its constructor.
package guard
