package canon

import (
	"crypto/md5"
	"regexp"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// Route records which resolution step produced a canonical identifier.
type Route int

const (
	// RouteCanonical means the input was already canonical.
	RouteCanonical Route = iota
	// RouteBase58 means the input was a Base58-packed UUID.
	RouteBase58
	// RouteDerived means the identifier was derived from an MD5 digest.
	RouteDerived
)

// String returns the route name shown by the CLI.
func (r Route) String() string {
	switch r {
	case RouteCanonical:
		return "canonical"
	case RouteBase58:
		return "base58"
	case RouteDerived:
		return "derived"
	default:
		return "unknown"
	}
}

// Decoder decodes a Base58 payload into big-endian bytes.
type Decoder interface {
	Decode(s string) ([]byte, error)
}

// Base58 decodes with the Bitcoin alphabet via github.com/mr-tron/base58.
type Base58 struct{}

// Decode implements Decoder.
func (Base58) Decode(s string) ([]byte, error) {
	return base58.Decode(s)
}

// Canonicalizer resolves legacy identifiers. It holds no mutable state.
type Canonicalizer struct {
	decoder Decoder
	shape   *regexp.Regexp
}

// New returns a Canonicalizer using the Bitcoin-alphabet Base58 decoder.
func New() *Canonicalizer {
	return NewWithDecoder(Base58{})
}

// NewWithDecoder returns a Canonicalizer using the given decoder.
func NewWithDecoder(d Decoder) *Canonicalizer {
	return &Canonicalizer{
		decoder: d,
		shape:   regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`),
	}
}

// Canonicalize returns the canonical identifier for id.
func (c *Canonicalizer) Canonicalize(id string) string {
	out, _ := c.Resolve(id)
	return out
}

// CanonicalizeAll canonicalizes each id, preserving order.
func (c *Canonicalizer) CanonicalizeAll(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = c.Canonicalize(id)
	}
	return out
}

// IsCanonical reports whether id already has the canonical shape.
func (c *Canonicalizer) IsCanonical(id string) bool {
	return c.shape.MatchString(id)
}

// Resolve returns the canonical identifier and the route that produced it.
func (c *Canonicalizer) Resolve(id string) (string, Route) {
	if c.IsCanonical(id) {
		return id, RouteCanonical
	}
	if len(id) == 21 || len(id) == 22 {
		if u, ok := c.decodeUUID(id); ok {
			return u.String(), RouteBase58
		}
	}
	return derive(id).String(), RouteDerived
}

// decodeUUID interprets id as a Base58 big-endian integer. It succeeds only
// when the integer fits in 128 bits and has the v4 version and RFC 4122
// variant, which keeps the output stable under re-canonicalization.
func (c *Canonicalizer) decodeUUID(id string) (uuid.UUID, bool) {
	raw, err := c.decoder.Decode(id)
	if err != nil {
		return uuid.Nil, false
	}
	for len(raw) > 0 && raw[0] == 0 {
		raw = raw[1:]
	}
	if len(raw) > 16 {
		return uuid.Nil, false
	}

	var u uuid.UUID
	copy(u[16-len(raw):], raw)
	if u.Version() != 4 || u.Variant() != uuid.RFC4122 {
		return uuid.Nil, false
	}
	return u, true
}

// derive hashes id with MD5 and forces the version nibble to 4 and the
// variant bits to 10xx.
func derive(id string) uuid.UUID {
	sum := md5.Sum([]byte(id))
	sum[6] = (sum[6] & 0x0f) | 0x40
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.UUID(sum)
}
