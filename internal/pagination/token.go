package pagination

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"storytasks/internal/errs"
)

// envelope is the binary payload behind a page token: a two element CBOR array.
type envelope struct {
	_        struct{} `cbor:",toarray"`
	Cursor   int64
	IssuedAt int64
}

// Codec encodes and decodes page tokens.
// A zero TTL means issued-at is carried but never checked.
type Codec struct {
	TTL time.Duration
	Now func() time.Time
}

// DefaultCodec never expires tokens.
var DefaultCodec = Codec{}

func (c Codec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Encode returns a token resuming at cursor. ok is false when cursor is not
// positive, meaning there are no further pages.
func (c Codec) Encode(cursor int64) (token string, ok bool) {
	if cursor <= 0 {
		return "", false
	}
	b, err := cbor.Marshal(envelope{Cursor: cursor, IssuedAt: c.now().Unix()})
	if err != nil {
		return "", false
	}
	return base64.RawURLEncoding.EncodeToString(b), true
}

// DecodeOr returns the cursor carried by token, or def when token is empty.
// A supplied token that cannot be decoded is an InvalidArgs error.
func (c Codec) DecodeOr(token string, def int64) (int64, error) {
	if token == "" {
		return def, nil
	}

	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, errs.WrapInvalidArgs("invalid page token", err)
	}

	var env envelope
	if err := cbor.Unmarshal(b, &env); err != nil {
		return 0, errs.WrapInvalidArgs("invalid page token", err)
	}
	if env.Cursor <= 0 {
		return 0, errs.WrapInvalidArgs("invalid page token", fmt.Errorf("cursor out of range: %d", env.Cursor))
	}

	if c.TTL > 0 {
		issued := time.Unix(env.IssuedAt, 0)
		if c.now().Sub(issued) > c.TTL {
			return 0, errs.NewInvalidArgs("page token expired")
		}
	}

	return env.Cursor, nil
}

// Encode encodes cursor with the default codec.
func Encode(cursor int64) (string, bool) {
	return DefaultCodec.Encode(cursor)
}

// DecodeOr decodes token with the default codec.
func DecodeOr(token string, def int64) (int64, error) {
	return DefaultCodec.DecodeOr(token, def)
}
