package config

import (
	"fmt"
	"strings"
)

// PacePreset is a named pacing profile.
type PacePreset string

const (
	PaceRelaxed PacePreset = "relaxed"
	PaceNormal  PacePreset = "normal"
	PaceBrisk   PacePreset = "brisk"
	PaceInstant PacePreset = "instant"
)

// PacePresets lists the presets in display order.
func PacePresets() []PacePreset {
	return []PacePreset{PaceRelaxed, PaceNormal, PaceBrisk, PaceInstant}
}

// ParsePace validates a preset name. The empty string is accepted and
// means "keep the configured pacing".
func ParsePace(s string) (PacePreset, error) {
	p := PacePreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return "", nil
	}
	for _, known := range PacePresets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown pace %q", s)
}

// PacingFor returns the pacing a preset stands for.
func PacingFor(p PacePreset) PacingConfig {
	switch p {
	case PaceRelaxed:
		return PacingConfig{ClearTicks: 12, FallTicks: 8, PopupTicks: 60, FlashTicks: 90}
	case PaceBrisk:
		return PacingConfig{ClearTicks: 3, FallTicks: 2, PopupTicks: 30, FlashTicks: 45}
	case PaceInstant:
		return PacingConfig{ClearTicks: 0, FallTicks: 0, PopupTicks: 20, FlashTicks: 30}
	default:
		return PacingConfig{ClearTicks: 6, FallTicks: 4, PopupTicks: 45, FlashTicks: 60}
	}
}

// ApplyPace replaces cfg's pacing with the preset's. An empty preset is a no-op.
func ApplyPace(cfg *TileChainConfig, p PacePreset) {
	if p == "" {
		return
	}
	cfg.Pace = p
	cfg.Pacing = PacingFor(p)
}

// Pacer spaces engine steps out over ticks.
type Pacer struct {
	cfg  PacingConfig
	wait int
}

// NewPacer creates a pacer that is immediately ready.
func NewPacer(cfg PacingConfig) *Pacer {
	return &Pacer{cfg: cfg}
}

// Tick counts down one tick and reports whether a step may run now.
func (p *Pacer) Tick() bool {
	if p.wait > 0 {
		p.wait--
	}
	return p.wait == 0
}

// Ready reports whether no delay is pending, without consuming a tick.
func (p *Pacer) Ready() bool { return p.wait == 0 }

// AfterClear arms the delay that follows a tile clear.
func (p *Pacer) AfterClear() { p.wait = p.cfg.ClearTicks }

// AfterFall arms the delay that follows a column refill.
func (p *Pacer) AfterFall() { p.wait = p.cfg.FallTicks }

// Reset drops any pending delay.
func (p *Pacer) Reset() { p.wait = 0 }

// Config returns the pacing in use.
func (p *Pacer) Config() PacingConfig { return p.cfg }
