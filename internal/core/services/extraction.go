package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driven"
	"github.com/openlab-tools/reagentcheck/internal/core/ports/driving"
	"github.com/openlab-tools/reagentcheck/internal/logger"
)

// Ensure ExtractionService implements the interface.
var _ driving.ExtractionService = (*ExtractionService)(nil)

// ExtractionService runs the extraction pipeline: select pages, dispatch
// to the parser for the analyzer key, and cache the result by content
// fingerprint. The pipeline is synchronous per document; concurrent
// callers may run independent documents sharing only the read-only
// registry.
type ExtractionService struct {
	registry driven.ParserRegistry
	runs     driven.RunStore
}

// NewExtractionService creates an extraction service. The run store is
// optional (nil disables caching and history).
func NewExtractionService(registry driven.ParserRegistry, runs driven.RunStore) *ExtractionService {
	return &ExtractionService{registry: registry, runs: runs}
}

// Extract parses the selected page text under the analyzer's profile.
func (s *ExtractionService) Extract(
	ctx context.Context, analyzerKey string, pages []domain.RawPage, opts domain.ExtractOptions,
) (*domain.ExtractionResult, error) {
	logger.Section("Extraction")
	logger.Debug("Analyzer: %q, pages supplied: %d", analyzerKey, len(pages))

	text := selectPages(pages, opts)
	if strings.TrimSpace(text) == "" {
		// No text at all is an upstream collaborator failure, distinct
		// from a document that parses to nothing.
		return nil, fmt.Errorf("no page text selected: %w", domain.ErrInvalidInput)
	}

	parser, ok := s.registry.ParserFor(analyzerKey)
	if !ok {
		if !opts.AllowFallback {
			return nil, fmt.Errorf("analyzer %q: %w", analyzerKey, domain.ErrProfileNotFound)
		}
		parser = s.registry.Fallback()
		if parser == nil {
			return nil, fmt.Errorf("analyzer %q and no fallback registered: %w", analyzerKey, domain.ErrProfileNotFound)
		}
		logger.Info("No profile for %q, using generic fallback", analyzerKey)
	}

	fp := fingerprint(parser.ProfileKey(), text)
	if cached := s.lookup(ctx, fp); cached != nil {
		logger.Info("Fingerprint hit, serving cached result")
		return cached, nil
	}

	result, err := parser.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("parsing with %q: %w", parser.ProfileKey(), err)
	}
	logger.Info("Parsed %d records, skipped %d lines", result.Records.Len(), len(result.Skipped))

	s.remember(ctx, analyzerKey, fp, result)
	return result, nil
}

// selectPages concatenates the requested pages in page order. Line
// continuity matters for header location and terminator detection, so
// pages are sorted by index before joining.
func selectPages(pages []domain.RawPage, opts domain.ExtractOptions) string {
	selected := make([]domain.RawPage, 0, len(pages))
	for _, p := range pages {
		if opts.WantsPage(p.Index) {
			selected = append(selected, p)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Index < selected[j].Index
	})

	var b strings.Builder
	for i, p := range selected {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

// fingerprint hashes the parsing strategy key plus the exact input text.
// Extraction is deterministic, so equal fingerprints imply equal results.
func fingerprint(profileKey, text string) string {
	h := sha256.New()
	h.Write([]byte(profileKey))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// lookup serves a cached result for the fingerprint, if any. Cache
// failures only log; extraction proceeds without them.
func (s *ExtractionService) lookup(ctx context.Context, fp string) *domain.ExtractionResult {
	if s.runs == nil {
		return nil
	}
	run, err := s.runs.FindByFingerprint(ctx, fp)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Run store lookup failed: %v", err)
		}
		return nil
	}
	result := run.Result
	return &result
}

// remember stores the run for caching and history. Failures only log.
func (s *ExtractionService) remember(ctx context.Context, analyzerKey, fp string, result *domain.ExtractionResult) {
	if s.runs == nil {
		return
	}
	run := &domain.ExtractionRun{
		ID:          uuid.New().String(),
		AnalyzerKey: analyzerKey,
		Fingerprint: fp,
		Result:      *result,
		CreatedAt:   time.Now(),
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		logger.Warn("Run store save failed: %v", err)
	}
}
