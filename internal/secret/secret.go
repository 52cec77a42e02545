// Package secret provides a wrapper for secret-carrying strings
// (passwords, session tokens, 2FA codes). The wrapped value never appears
// in formatted output, JSON, or structured logs; reading it requires an
// explicit Expose call at the point of use.
package secret

import "log/slog"

const redacted = "[REDACTED]"

// String holds a secret string value.
type String struct {
	v string
}

// New wraps a secret value.
func New(v string) String {
	return String{v: v}
}

// Expose returns the underlying secret value.
func (s String) Expose() string {
	return s.v
}

// IsEmpty reports whether the wrapped value is the empty string.
func (s String) IsEmpty() bool {
	return s.v == ""
}

// Equal compares two secrets for exact equality.
func (s String) Equal(other String) bool {
	return s.v == other.v
}

func (s String) String() string {
	return redacted
}

func (s String) GoString() string {
	return "secret.String(" + redacted + ")"
}

// MarshalJSON always emits a redaction marker so a secret can never leak
// through response serialization by accident.
func (s String) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// LogValue implements slog.LogValuer.
func (s String) LogValue() slog.Value {
	return slog.StringValue(redacted)
}
