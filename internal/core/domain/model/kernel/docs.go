// Package kernel contains shared value objects used across the domain model:
// UUID identifiers and validated geographic points. These types are immutable,
// constructed only through factory functions, and safe for concurrent use.
package kernel
