package client

import (
	"context"
	"strings"
)

// PinState is the phase of the 4-digit challenge.
type PinState int

const (
	PinIdle       PinState = iota // No digits entered
	PinEntering                   // 1–3 digits entered
	PinValidating                 // Awaiting activation result
	PinSuccess                    // Terminal: caller is now admin
	PinError                      // Last attempt failed; digits cleared
)

const pinLength = 4

// ActivateFunc runs the activation round-trip for a complete PIN and
// reports pass/fail. The server never says which factor was wrong.
type ActivateFunc func(ctx context.Context, pin string) bool

// PinEntry drives the 4-digit challenge: digit entry with auto-advance,
// backspace navigation and auto-submit on the last digit. Activation is
// injected and called exactly once per complete entry.
type PinEntry struct {
	activate ActivateFunc
	digits   [pinLength]string
	focus    int
	state    PinState
	errMsg   string
}

// NewPinEntry creates a PinEntry in the Idle state with focus at 0.
func NewPinEntry(activate ActivateFunc) *PinEntry {
	return &PinEntry{activate: activate}
}

// State returns the current phase.
func (p *PinEntry) State() PinState { return p.state }

// Focus returns the active digit position (0–3).
func (p *PinEntry) Focus() int { return p.focus }

// Err returns the message shown after a failed attempt.
func (p *PinEntry) Err() string { return p.errMsg }

// Digits returns the entered digits, empty strings for blank positions.
func (p *PinEntry) Digits() [pinLength]string { return p.digits }

// EnterDigit accepts one digit at the focused position. Non-digit input
// is rejected silently. Entering the 4th digit submits immediately; no
// explicit confirm exists.
func (p *PinEntry) EnterDigit(ctx context.Context, r rune) {
	if p.state == PinSuccess || p.state == PinValidating {
		return
	}
	if r < '0' || r > '9' {
		return
	}

	// Typing after a failure starts a fresh attempt.
	if p.state == PinError {
		p.errMsg = ""
		p.state = PinIdle
	}

	p.digits[p.focus] = string(r)

	if p.focus < pinLength-1 {
		p.focus++
		p.state = PinEntering
		return
	}

	if p.complete() {
		p.submit(ctx)
	}
}

// Backspace clears the focused digit, or moves focus left when the
// position is already empty.
func (p *PinEntry) Backspace() {
	if p.state == PinSuccess || p.state == PinValidating {
		return
	}
	if p.digits[p.focus] == "" {
		if p.focus > 0 {
			p.focus--
		}
		return
	}
	p.digits[p.focus] = ""
	if p.empty() {
		p.state = PinIdle
	}
}

// PIN joins the entered digits.
func (p *PinEntry) PIN() string {
	return strings.Join(p.digits[:], "")
}

func (p *PinEntry) complete() bool {
	for _, d := range p.digits {
		if d == "" {
			return false
		}
	}
	return true
}

func (p *PinEntry) empty() bool {
	for _, d := range p.digits {
		if d != "" {
			return false
		}
	}
	return true
}

// submit runs the activation call. The flow suspends here until the
// server responds; there is no cancellation beyond ctx.
func (p *PinEntry) submit(ctx context.Context) {
	p.state = PinValidating

	if p.activate(ctx, p.PIN()) {
		p.state = PinSuccess
		return
	}

	// Failure: clear all digits, return focus to the first position.
	p.digits = [pinLength]string{}
	p.focus = 0
	p.errMsg = "PIN incorrecto"
	p.state = PinError
}
