// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package engine expands shortcode-query tags in page content. Each tag is
// resolved, turned into a SELECT, executed and rendered, one after another in
// document order. A tag with invalid attributes expands to the help panel;
// only database failures are returned as errors.
package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sqb/cli/internal/query"
	"sqb/cli/internal/render"
	"sqb/cli/internal/shortcode"
	"sqb/cli/internal/sqlexec"
)

// Engine expands shortcodes against one database.
type Engine struct {
	resolver *shortcode.Resolver
	querier  sqlexec.Querier
	tag      string
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTag sets the shortcode tag name. The default is shortcode.DefaultTag.
func WithTag(tag string) Option {
	return func(e *Engine) {
		if tag != "" {
			e.tag = tag
		}
	}
}

// WithLogger sets the logger used for query and validation diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine.
func New(resolver *shortcode.Resolver, querier sqlexec.Querier, opts ...Option) *Engine {
	e := &Engine{
		resolver: resolver,
		querier:  querier,
		tag:      shortcode.DefaultTag,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tag returns the shortcode tag name the engine expands.
func (e *Engine) Tag() string { return e.tag }

// Plan validates raw attributes and returns the statement they produce
// without running it.
func (e *Engine) Plan(raw shortcode.RawAttrs) (string, shortcode.Attrs, error) {
	attrs, err := e.resolver.Resolve(raw)
	if err != nil {
		return "", nil, err
	}
	return query.Build(attrs), attrs, nil
}

// Expand renders a single shortcode from its raw attributes.
func (e *Engine) Expand(ctx context.Context, raw shortcode.RawAttrs) (string, error) {
	stmt, attrs, err := e.Plan(raw)
	if err != nil {
		var verr *shortcode.ValidationError
		if errors.As(err, &verr) {
			e.logger.Debug("shortcode rejected", zap.Strings("errors", verr.Messages))
			return render.HelpFor(e.tag, e.resolver.Schema, verr.Messages), nil
		}
		return "", err
	}

	e.logger.Debug("shortcode query", zap.String("sql", stmt))
	res, err := e.querier.Query(ctx, stmt)
	if err != nil {
		return "", fmt.Errorf("expand [%s]: %w", e.tag, err)
	}
	return render.Render(res, attrs), nil
}

// ExpandContent replaces every shortcode in content with its rendered HTML.
// Escaped tags ([[tag ...]]) are written back as literal tags. The first
// database error aborts the expansion.
func (e *Engine) ExpandContent(ctx context.Context, content string) (string, error) {
	count := 0
	out, err := shortcode.Replace(content, e.tag, func(m shortcode.Match) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		count++
		return e.Expand(ctx, m.Attrs)
	})
	if err != nil {
		return "", err
	}

	e.logger.Debug("content expanded", zap.String("tag", e.tag), zap.Int("shortcodes", count))
	return out, nil
}
