package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Token type claim values.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrMalformedToken reports a token that is not three base64url segments
// wrapping a JSON object payload.
var ErrMalformedToken = errors.New("malformed token")

// Claims is the decoded token payload.
type Claims map[string]any

// DecodedToken carries the split parts of a token. SignedMessage is the
// dot-joined header and payload segments the signature covers.
type DecodedToken struct {
	Header        map[string]any
	Claims        Claims
	Signature     []byte
	SignedMessage string
}

// Encode signs claims into a three-segment HS256 token with no padding.
func Encode(claims Claims, secret []byte) (string, error) {
	header := map[string]string{"alg": jwt.SigningMethodHS256.Alg(), "typ": "JWT"}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	msg := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(payloadJSON)

	sig, err := jwt.SigningMethodHS256.Sign(msg, secret)
	if err != nil {
		return "", err
	}
	return msg + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Decode splits and parses a token without verifying it.
func Decode(tokenStr string) (*DecodedToken, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}

	headerRaw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrMalformedToken
	}
	payloadRaw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrMalformedToken
	}
	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, ErrMalformedToken
	}

	var header map[string]any
	if err := json.Unmarshal(headerRaw, &header); err != nil {
		return nil, ErrMalformedToken
	}
	var claims Claims
	if err := json.Unmarshal(payloadRaw, &claims); err != nil || claims == nil {
		return nil, ErrMalformedToken
	}

	return &DecodedToken{
		Header:        header,
		Claims:        claims,
		Signature:     signature,
		SignedMessage: parts[0] + "." + parts[1],
	}, nil
}

// VerifySignature recomputes the HMAC over the signed message and compares in
// constant time. Mismatches carry no detail at all.
func VerifySignature(signedMessage string, signature, secret []byte) bool {
	return jwt.SigningMethodHS256.Verify(signedMessage, signature, secret) == nil
}
