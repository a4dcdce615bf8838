// Package domain contains the core business entities and their validation
// rules. Domain types are persistence-agnostic; stores and services depend
// on this package, never the other way around.
package domain
