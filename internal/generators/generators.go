// Package generators produces the random artifacts of the gadget domain:
// codenames, self-destruct confirmation codes, and mission success
// probabilities. The random source is injectable so tests can script draws.
package generators

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrCodenameExhausted = errors.New("unable to generate unique codename")

var codenamePrefixes = []string{
	"The", "Project", "Operation", "Agent", "Shadow", "Phoenix", "Viper", "Falcon",
	"Storm", "Lightning", "Thunder", "Phantom", "Ghost", "Stealth", "Crimson", "Silver",
}

var codenameSuffixes = []string{
	"Nightingale", "Kraken", "Scorpion", "Viper", "Phoenix", "Falcon", "Eagle", "Hawk",
	"Wolf", "Tiger", "Panther", "Jaguar", "Cobra", "Mamba", "Serpent", "Dragon",
	"Raven", "Owl", "Fox", "Lynx", "Leopard", "Lion", "Bear", "Shark",
	"Tornado", "Hurricane", "Blizzard", "Avalanche", "Earthquake", "Tsunami",
	"Inferno", "Glacier", "Volcano", "Meteor", "Comet", "Nova",
	"Nexus", "Matrix", "Cipher", "Enigma", "Paradox", "Quantum",
	"Prism", "Spectrum", "Infinity", "Eternity", "Destiny", "Legacy",
}

const (
	confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	confirmationLength   = 6

	// The codename space is only 16*48 = 768 combinations, so collisions are
	// expected as the inventory grows. Allocation gives up after a fixed
	// number of draws rather than looping; callers treat exhaustion as a
	// transient failure and retry the whole request.
	maxCodenameAttempts = 10
)

// Generator draws codenames, confirmation codes, and success probabilities.
type Generator struct {
	intN func(n int) int
}

// New returns a Generator backed by the default random source.
func New() *Generator {
	return &Generator{intN: rand.IntN}
}

// NewWithIntN returns a Generator whose draws come from intN, which must
// return values in [0, n).
func NewWithIntN(intN func(n int) int) *Generator {
	return &Generator{intN: intN}
}

// Codename draws a single "<prefix> <suffix>" candidate. Uniqueness is the
// caller's problem; use UniqueCodename for allocation.
func (g *Generator) Codename() string {
	prefix := codenamePrefixes[g.intN(len(codenamePrefixes))]
	suffix := codenameSuffixes[g.intN(len(codenameSuffixes))]
	return fmt.Sprintf("%s %s", prefix, suffix)
}

// UniqueCodename draws candidates until taken reports one free, bounded at
// maxCodenameAttempts draws. The taken check is a best-effort pre-filter;
// the store's unique constraint remains the real backstop.
func (g *Generator) UniqueCodename(taken func(codename string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxCodenameAttempts; attempt++ {
		candidate := g.Codename()
		inUse, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
	}
	return "", ErrCodenameExhausted
}

// ConfirmationCode returns a 6-character code over [A-Z0-9]. Characters are
// drawn with replacement, so repeats within a code are possible.
func (g *Generator) ConfirmationCode() string {
	code := make([]byte, confirmationLength)
	for i := range code {
		code[i] = confirmationAlphabet[g.intN(len(confirmationAlphabet))]
	}
	return string(code)
}

// SuccessProbability returns a mission success percentage in [65, 99]. The
// value is decoration for read responses and is never persisted.
func (g *Generator) SuccessProbability() int {
	return g.intN(35) + 65
}
