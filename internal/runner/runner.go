// Package runner wraps an audit engine with run identity, outcome logging,
// and report rendering. Both one-shot and watch-mode execution go through it.
package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/okanv/sitelint/internal/audit"
	"github.com/okanv/sitelint/internal/model"
	"github.com/okanv/sitelint/internal/platform/errs"
	"github.com/okanv/sitelint/internal/platform/runid"
	"github.com/okanv/sitelint/internal/report"
)

// AuditProvider defines the contract for any audit engine.
type AuditProvider interface {
	Run(ctx context.Context) (*model.AuditResult, *audit.LinkGraph, error)
}

// Service executes an AuditProvider and renders its report.
type Service struct {
	provider AuditProvider
	logger   *slog.Logger
	out      io.Writer
}

// NewService creates a Service writing reports to out.
func NewService(provider AuditProvider, logger *slog.Logger, out io.Writer) *Service {
	return &Service{provider: provider, logger: logger, out: out}
}

// Execute performs one audit run tagged with a fresh run ID and logs the
// outcome.
func (s *Service) Execute(ctx context.Context) (*model.AuditResult, error) {
	id := runid.New()
	ctx = runid.NewContext(ctx, id)
	logger := s.logger.With("run_id", id)

	start := time.Now()
	result, _, err := s.provider.Run(ctx)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: "Audit timed out before completing.",
				Cause:   err,
			}
		}
		logger.Error("audit failed", "error", err)
		return nil, err
	}

	logger.Info("audit complete",
		"documents", result.DocumentCount,
		"external_links", result.ExternalLinkCount,
		"issues", len(result.Issues),
		"errors", result.ErrorCount(),
		"score", result.Score,
		"duration", time.Since(start).String(),
	)

	if err := report.Render(s.out, result); err != nil {
		return nil, err
	}
	return result, nil
}
