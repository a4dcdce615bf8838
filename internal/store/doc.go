// Package store defines the persistence interfaces and shared error values
// used by the application's services. Concrete implementations live under
// internal/platform (e.g. the postgres package); services depend only on
// these interfaces.
package store
