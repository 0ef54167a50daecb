// Package token encodes the action descriptor carried by every inline control
//
// Layout is tagged and length prefixed
//
//	byte 0     action  'e' expand, 'a' add
//	byte 1     media   'm' movie, 's' series
//	bytes 2-3  decimal width n of the id, 01..19
//	bytes 4..  the id in n decimal digits, no leading zeros
//
// so expand movie 550 is "em03550"; the longest token is 23 bytes
package token

import (
	"strconv"

	"cinebot/internal/core/media"
	perr "cinebot/internal/platform/errors"
)

// Action is what a control asks the bot to do with its title
type Action string

const (
	// Expand reveals the detailed view
	Expand Action = "expand"
	// Add saves the title to the actor's watchlist
	Add Action = "add"
)

// MaxLen is the longest encoding Encode can produce
const MaxLen = 4 + maxDigits

// PayloadLimit is the transport ceiling for control payloads
const PayloadLimit = 64

const maxDigits = 19 // len("9223372036854775807")

// Token is an action bound to a title
type Token struct {
	Action Action
	Ref    media.Ref
}

var (
	actionTags = map[Action]byte{Expand: 'e', Add: 'a'}
	mediaTags  = map[media.Type]byte{media.Movie: 'm', media.Series: 's'}
)

// Encode serializes t
// it fails with InvalidArgument when the action or ref is outside the codec domain
func Encode(t Token) (string, error) {
	a, ok := actionTags[t.Action]
	if !ok {
		return "", perr.InvalidArgf("token: unknown action %q", t.Action)
	}
	m, ok := mediaTags[t.Ref.Type]
	if !ok {
		return "", perr.InvalidArgf("token: unknown media type %q", t.Ref.Type)
	}
	if t.Ref.ID < 0 {
		return "", perr.InvalidArgf("token: negative id %d", t.Ref.ID)
	}
	id := strconv.FormatInt(t.Ref.ID, 10)

	b := make([]byte, 0, 4+len(id))
	b = append(b, a, m, byte('0'+len(id)/10), byte('0'+len(id)%10))
	b = append(b, id...)
	return string(b), nil
}

// MustEncode is Encode for values built from constants
func MustEncode(action Action, ref media.Ref) string {
	s, err := Encode(Token{Action: action, Ref: ref})
	if err != nil {
		panic(err)
	}
	return s
}

// Decode parses s back into a Token
// every failure is a MalformedToken error
func Decode(s string) (Token, error) {
	if len(s) < 5 || len(s) > MaxLen {
		return Token{}, perr.MalformedTokenf("token: bad length %d", len(s))
	}

	var t Token
	switch s[0] {
	case 'e':
		t.Action = Expand
	case 'a':
		t.Action = Add
	default:
		return Token{}, perr.MalformedTokenf("token: unknown action tag %q", s[0])
	}
	switch s[1] {
	case 'm':
		t.Ref.Type = media.Movie
	case 's':
		t.Ref.Type = media.Series
	default:
		return Token{}, perr.MalformedTokenf("token: unknown media tag %q", s[1])
	}

	if !isDigit(s[2]) || !isDigit(s[3]) {
		return Token{}, perr.MalformedTokenf("token: bad width field")
	}
	n := int(s[2]-'0')*10 + int(s[3]-'0')
	digits := s[4:]
	if n == 0 || n > maxDigits || len(digits) != n {
		return Token{}, perr.MalformedTokenf("token: width %d does not match %d digits", n, len(digits))
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return Token{}, perr.MalformedTokenf("token: id is not numeric")
		}
	}
	if n > 1 && digits[0] == '0' {
		return Token{}, perr.MalformedTokenf("token: id has leading zeros")
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Token{}, perr.MalformedTokenf("token: id out of range")
	}
	t.Ref.ID = id
	return t, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
