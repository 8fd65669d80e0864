package ports

// TokenCodec issues and verifies signed bearer tokens. The only claim a
// token carries is the subject email.
type TokenCodec interface {
	// Issue returns a signed token for the subject, valid for a fixed window.
	Issue(subject string) (string, error)
	// Verify validates signature and expiry and returns the subject.
	// Fails with domain.ErrTokenExpired or domain.ErrTokenMalformed.
	Verify(token string) (string, error)
}
