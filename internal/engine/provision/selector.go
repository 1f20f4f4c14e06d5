package provision

import (
	"context"

	"go.trai.ch/fftwlink/internal/core/domain"
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Provisioner = (*Selector)(nil)

// Selector maps a strategy onto its provisioner and rejects strategies that
// cannot serve the platform variant.
type Selector struct {
	provisioners map[domain.Strategy]ports.Provisioner
}

// NewSelector creates a Selector over the three strategies.
func NewSelector(bundled, source, download ports.Provisioner) *Selector {
	return &Selector{
		provisioners: map[domain.Strategy]ports.Provisioner{
			domain.StrategyBundled:  bundled,
			domain.StrategySource:   source,
			domain.StrategyDownload: download,
		},
	}
}

// Select returns the provisioner for the strategy.
func (s *Selector) Select(strategy domain.Strategy, variant domain.Variant) (ports.Provisioner, error) {
	p, ok := s.provisioners[strategy]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownStrategy, "invalid strategy"), "strategy", string(strategy))
	}
	if !strategy.Supports(variant) {
		err := zerr.Wrap(domain.ErrStrategyUnsupported, string(strategy)+" cannot provision "+variant.String())
		return nil, zerr.With(zerr.With(err, "strategy", string(strategy)), "variant", variant.String())
	}
	return p, nil
}

// Provision dispatches to the provisioner of cfg.Strategy.
func (s *Selector) Provision(ctx context.Context, cfg domain.Config, platform domain.Platform) (domain.Bundle, error) {
	p, err := s.Select(cfg.Strategy, platform.Variant)
	if err != nil {
		return domain.Bundle{}, err
	}
	return p.Provision(ctx, cfg, platform)
}
