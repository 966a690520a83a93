package ports

// SessionCache is the persisted cross-invocation cache contract plugins may
// use, e.g. for credential sessions. Entries are named, stored under the
// project scratch directory with owner-only permissions, and survive between
// invocations. The directory is passed per call because it belongs to the
// loaded project, not to the process.
//
//go:generate go run go.uber.org/mock/mockgen -source=session_cache.go -destination=mocks/mock_session_cache.go -package=mocks
type SessionCache interface {
	// Read decodes the named entry under dir into out. The bool reports
	// presence.
	Read(dir, name string, out any) (bool, error)

	// Write encodes v into the named entry under dir.
	Write(dir, name string, v any) error

	// Remove deletes the named entry if present.
	Remove(dir, name string) error
}
