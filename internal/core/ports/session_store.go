package ports

// SessionStore maps opaque bearer tokens to user identifiers for the
// lifetime of the process. Implementations must be safe for concurrent
// use; a token issued by Issue is visible to Resolve once Issue returns.
type SessionStore interface {
	// Issue generates a fresh token for userID and records the mapping.
	Issue(userID int64) (string, error)
	// Resolve returns the user the token was issued for. ok is false for
	// empty or unknown tokens.
	Resolve(token string) (userID int64, ok bool)
	// Count reports the number of live sessions.
	Count() int
}
