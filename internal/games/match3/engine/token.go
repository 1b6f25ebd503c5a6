// Package engine implements the match-3 core: the grid model, run detection,
// the swap controller and the cascade resolution loop.
// It has no external dependencies so that game logic stays pure and testable;
// presentation is reached only through the Renderer and StatusReporter interfaces.
package engine

import (
	"fmt"
	"math/rand"
	"strings"
)

// Token identifies the creature occupying a cell.
// The zero value is Empty and marks a cell vacated during clear/refill.
type Token uint8

const (
	Empty Token = iota
	Zouwu
	Swooping
	Salamander
	Puffskein
	Kelpie
)

// Kinds is the closed set of matchable tokens.
var Kinds = []Token{Zouwu, Swooping, Salamander, Puffskein, Kelpie}

var tokenNames = map[Token]string{
	Empty:      "empty",
	Zouwu:      "zouwu",
	Swooping:   "swooping",
	Salamander: "salamander",
	Puffskein:  "puffskein",
	Kelpie:     "kelpie",
}

// Valid reports whether t is one of the matchable kinds.
func (t Token) Valid() bool {
	return t >= Zouwu && t <= Kelpie
}

// String returns the lowercase creature name.
func (t Token) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", uint8(t))
}

// Glyph returns the single-letter symbol used by text renderers and test fixtures.
func (t Token) Glyph() rune {
	switch t {
	case Zouwu:
		return 'Z'
	case Swooping:
		return 'S'
	case Salamander:
		return 'A'
	case Puffskein:
		return 'P'
	case Kelpie:
		return 'K'
	default:
		return '.'
	}
}

// ParseToken resolves a creature name (case-insensitive) or its glyph.
func ParseToken(s string) (Token, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if s == k.String() || s == strings.ToLower(string(k.Glyph())) {
			return k, nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownToken, s)
}

// RandomToken draws a kind uniformly.
func RandomToken(rng *rand.Rand) Token {
	return Kinds[rng.Intn(len(Kinds))]
}
