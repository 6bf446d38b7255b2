// Package store defines persistence interfaces and error types shared by
// store implementations and their consumers. Keeping the interfaces here
// lets handlers depend on behavior instead of a concrete database client.
package store
