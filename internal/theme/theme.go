// Package theme tracks the light/dark display preference and notifies
// listeners when it changes.
package theme

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Mode is a display theme.
type Mode string

// Supported modes.
const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ErrUnknownMode is returned by ParseMode for names other than light or dark.
var ErrUnknownMode = errors.New("unknown theme")

// ParseMode parses a case-insensitive theme name. Empty means Light.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Light):
		return Light, nil
	case string(Dark):
		return Dark, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Toggled returns the opposite mode.
func (m Mode) Toggled() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) String() string { return string(m) }

// Change describes a theme transition.
type Change struct {
	From Mode
	To   Mode
}

// Controller owns the current mode and publishes every change.
type Controller struct {
	mu       sync.Mutex
	mode     Mode
	notifier *Notifier
}

// NewController returns a controller starting at mode. notifier may be nil.
func NewController(mode Mode, notifier *Notifier) *Controller {
	if mode != Dark {
		mode = Light
	}
	return &Controller{mode: mode, notifier: notifier}
}

// Current returns the active mode.
func (c *Controller) Current() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Set switches to mode and publishes a Change when it differs from the
// current mode. Reports whether the mode changed.
func (c *Controller) Set(mode Mode) bool {
	c.mu.Lock()
	prev := c.mode
	if prev == mode {
		c.mu.Unlock()
		return false
	}
	c.mode = mode
	c.mu.Unlock()

	if c.notifier != nil {
		c.notifier.Publish(Change{From: prev, To: mode})
	}
	return true
}

// Toggle flips between light and dark and returns the new mode.
func (c *Controller) Toggle() Mode {
	next := c.Current().Toggled()
	c.Set(next)
	return next
}
