// Package testcards lets partner integrations pay with well-known test card
// numbers regardless of the expiry they type. Numbers with the configured
// prefix skip the standard date check; everything else falls through to the
// default rule.
package testcards

import (
	"strings"

	"github.com/partnerpay/paymentpage/internal/cards"
	"github.com/partnerpay/paymentpage/internal/override"
	"github.com/partnerpay/paymentpage/internal/verdict"
)

// DefaultPrefix marks the classic 4111... VISA test range.
const DefaultPrefix = "4111"

type Plugin struct {
	prefix string
}

// New returns the plugin for a custom test-card prefix; empty means
// DefaultPrefix.
func New(prefix string) *Plugin {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Plugin{prefix: prefix}
}

func (p *Plugin) Name() string { return "testcards" }

func (p *Plugin) Overrides() []override.Registration {
	return []override.Registration{
		{Kind: override.KindExpiry, Validate: p.validateExpiry},
	}
}

func (p *Plugin) validateExpiry(_, cardNumber string) override.Decision {
	if strings.HasPrefix(cards.Normalize(cardNumber), p.prefix) {
		return override.Resolve(verdict.OK().With("test_card", true))
	}
	return override.Defer()
}
