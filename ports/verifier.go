package ports

// Verifier checks a wallet signature over a challenge message.
//
// Implementations receive the signature and address in their chain's wire
// encoding and must fail closed: malformed input is a false result, never a
// panic, because this boundary handles unauthenticated network data.
type Verifier interface {
	Verify(message []byte, signature string, address string) bool
}
