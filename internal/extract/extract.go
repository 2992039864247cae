// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract pulls text out of PDF documents through an ordered chain of
// extraction backends. Backends are individually optional: anything
// unavailable in the current build is skipped silently, and the first backend
// producing non-empty text wins. Encrypted or malformed documents get one
// repair attempt (a decrypted sibling copy) before the chain gives up.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrBackendUnavailable is returned by backends compiled out of this build.
var ErrBackendUnavailable = errors.New("extraction backend not available in this build")

// Backend is one text-extraction strategy. Implementations must not panic;
// library panics are recovered and surfaced as errors.
type Backend interface {
	// Name identifies the backend in diagnostics.
	Name() string

	// Available reports whether the backend can run in this build. An
	// unavailable backend is skipped, never treated as an error.
	Available() bool

	// Extract returns the document text. An empty result is not an error;
	// the chain treats whitespace-only text as a miss and moves on.
	Extract(ctx context.Context, path string) (string, error)
}

// Repairer attempts to produce a readable copy of a document that every
// backend has failed on (typically by decrypting it).
type Repairer interface {
	Available() bool

	// Repair writes a repaired sibling copy and returns its path. The copy is
	// not cleaned up; its name must not end in ".pdf" so document discovery
	// never picks it up.
	Repair(ctx context.Context, path string) (string, error)
}

// Chain runs backends in priority order against a document.
type Chain struct {
	primary   Backend
	fallbacks []Backend
	repairer  Repairer
	timeout   time.Duration
	log       zerolog.Logger
}

// Option configures a Chain.
type Option func(*Chain)

// WithTimeout bounds the total extraction time per document. Zero disables
// the bound. On timeout the document is treated as an extraction failure; a
// backend stuck in a library call is abandoned, not interrupted.
func WithTimeout(d time.Duration) Option {
	return func(c *Chain) { c.timeout = d }
}

// WithLogger routes per-attempt diagnostics to the given logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Chain) { c.log = log }
}

// NewChain builds the default backend chain: page-text extraction first, then
// content-stream parsing, then MuPDF (when compiled in), with a pdfcpu
// decrypt pass as the repair step.
func NewChain(opts ...Option) *Chain {
	c := &Chain{
		primary:   PageTextBackend{},
		fallbacks: []Backend{ContentStreamBackend{}, MuPDFBackend{}},
		repairer:  DecryptRepairer{},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newChainWith is the injection point for tests.
func newChainWith(primary Backend, fallbacks []Backend, rep Repairer, opts ...Option) *Chain {
	c := &Chain{
		primary:   primary,
		fallbacks: fallbacks,
		repairer:  rep,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract tries each available backend in order and returns the first
// non-empty text. If everything fails it returns the last captured error, or
// a generic empty-text error when no backend reported one.
func (c *Chain) Extract(ctx context.Context, path string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	lastErr := errors.New("extraction returned empty text")

	try := func(b Backend, p string) (string, bool) {
		if b == nil || !b.Available() {
			return "", false
		}
		text, err := c.run(ctx, b, p)
		if err != nil {
			c.log.Debug().Str("backend", b.Name()).Str("file", p).Err(err).
				Msg("extraction attempt failed")
			lastErr = err
			return "", false
		}
		if strings.TrimSpace(text) == "" {
			lastErr = fmt.Errorf("%s returned empty text", b.Name())
			return "", false
		}
		return text, true
	}

	if text, ok := try(c.primary, path); ok {
		return text, nil
	}
	for _, b := range c.fallbacks {
		if text, ok := try(b, path); ok {
			return text, nil
		}
	}

	// Encrypted or otherwise malformed document: write a decrypted sibling
	// copy and rerun the fallback backends against it.
	if c.repairer != nil && c.repairer.Available() {
		copyPath, err := c.repairer.Repair(ctx, path)
		if err != nil {
			c.log.Debug().Str("file", path).Err(err).Msg("repair attempt failed")
		} else {
			c.log.Debug().Str("file", path).Str("copy", copyPath).Msg("retrying backends on repaired copy")
			for _, b := range c.fallbacks {
				if text, ok := try(b, copyPath); ok {
					return text, nil
				}
			}
		}
	}

	return "", lastErr
}

// run invokes a backend, honoring context cancellation. The backend call runs
// in its own goroutine only when a deadline is set; on timeout that goroutine
// is abandoned.
func (c *Chain) run(ctx context.Context, b Backend, path string) (string, error) {
	if ctx.Done() == nil {
		return b.Extract(ctx, path)
	}

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := b.Extract(ctx, path)
		ch <- result{text, err}
	}()

	select {
	case r := <-ch:
		return r.text, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", b.Name(), ctx.Err())
	}
}
