package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	formattererrors "phonefmt/internal/formatter/errors"
	"phonefmt/internal/formatter/validator"
	"phonefmt/pkg/config"
	apperrors "phonefmt/pkg/errors"
	"phonefmt/pkg/locale"
	"phonefmt/pkg/model"
	"phonefmt/pkg/phoneformat"
	"phonefmt/pkg/sanitizer"
)

type FormatterService interface {
	Format(ctx context.Context, req *model.FormatRequest) (*model.FormatResult, error)
	// FormatBatch keeps input order. Per-number failures are reported in the
	// result's Error field and counted in failed; err is for the whole batch.
	FormatBatch(ctx context.Context, req *model.BatchFormatRequest) (results []*model.FormatResult, failed int, err error)
	Ready(ctx context.Context) error
}

type formatterService struct {
	plan      phoneformat.Plan
	validator *validator.FormatValidator
	cfg       *config.Config

	mu          sync.RWMutex
	normalizers map[string]*phoneformat.Normalizer
}

// NewFormatterService uses phoneformat.DefaultPlan when plan is nil.
func NewFormatterService(plan phoneformat.Plan, validator *validator.FormatValidator, cfg *config.Config) FormatterService {
	if plan == nil {
		plan = phoneformat.DefaultPlan()
	}
	return &formatterService{
		plan:        plan,
		validator:   validator,
		cfg:         cfg,
		normalizers: make(map[string]*phoneformat.Normalizer),
	}
}

func (s *formatterService) Format(ctx context.Context, req *model.FormatRequest) (*model.FormatResult, error) {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Format request validation failed",
			"home_region", req.HomeRegion,
			"timezone", req.Timezone,
			"error", err,
		)
		return nil, apperrors.Validation("Format request validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	n, err := s.normalizer(s.resolveRegion(req.HomeRegion, req.Timezone))
	if err != nil {
		return nil, err
	}

	res, err := s.formatOne(n, req.Number, req.Strict)
	if err != nil {
		s.cfg.Log.Info("Phone number could not be parsed",
			"home_region", n.HomeRegion(),
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Debug("Phone number formatted",
		"home_region", res.HomeRegion,
		"style", res.Style,
		"fallback", res.Fallback,
		"bypassed", res.Bypassed,
	)
	return res, nil
}

func (s *formatterService) FormatBatch(ctx context.Context, req *model.BatchFormatRequest) ([]*model.FormatResult, int, error) {
	if err := s.validator.ValidateBatch(req, s.cfg.MaxBatchSize); err != nil {
		s.cfg.Log.Warn("Batch format request validation failed",
			"count", len(req.Numbers),
			"error", err,
		)
		return nil, 0, apperrors.Validation("Batch format request validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	n, err := s.normalizer(s.resolveRegion(req.HomeRegion, req.Timezone))
	if err != nil {
		return nil, 0, err
	}

	results := make([]*model.FormatResult, 0, len(req.Numbers))
	failed := 0
	for _, raw := range req.Numbers {
		if ctx.Err() != nil {
			return nil, 0, apperrors.Timeout("Batch formatting was cancelled")
		}

		res, err := s.formatOne(n, raw, req.Strict)
		if err != nil {
			res = &model.FormatResult{
				Input:      raw,
				HomeRegion: n.HomeRegion(),
				Error:      errorText(err),
			}
		}
		if res.Error != "" {
			failed++
		}
		results = append(results, res)
	}

	s.cfg.Log.Info("Batch formatted",
		"home_region", n.HomeRegion(),
		"count", len(results),
		"failed", failed,
	)
	return results, failed, nil
}

// Ready checks that the numbering plan answers for the configured home region.
func (s *formatterService) Ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.normalizer(s.cfg.HomeRegion); err != nil {
		return err
	}
	return nil
}

// resolveRegion picks the explicit region, then the timezone's region, then
// the configured default.
func (s *formatterService) resolveRegion(homeRegion, timezone string) string {
	if region := sanitizer.NormalizeRegion(homeRegion); region != "" {
		return region
	}
	return locale.DetectRegion(timezone, s.cfg.HomeRegion)
}

// normalizer returns the shared Normalizer for region, building it once.
func (s *formatterService) normalizer(region string) (*phoneformat.Normalizer, error) {
	s.mu.RLock()
	n, ok := s.normalizers[region]
	s.mu.RUnlock()
	if ok {
		return n, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.normalizers[region]; ok {
		return n, nil
	}

	n, err := phoneformat.New(s.plan, region)
	if err != nil {
		s.cfg.Log.Error("Failed to build normalizer", "home_region", region, "error", err)
		return nil, apperrors.InvalidInput(fmt.Sprintf("%v: %q", formattererrors.ErrUnsupportedRegion, region))
	}
	s.normalizers[region] = n
	return n, nil
}

// formatOne applies display semantics unless strict is set: bypassed inputs
// and unparseable inputs come back unchanged instead of failing.
func (s *formatterService) formatOne(n *phoneformat.Normalizer, raw string, strict bool) (*model.FormatResult, error) {
	res := &model.FormatResult{
		Input:      raw,
		HomeRegion: n.HomeRegion(),
	}

	if !strict && phoneformat.Bypass(raw) {
		res.Formatted = raw
		res.Bypassed = true
		return res, nil
	}

	resolved, err := n.Resolve(raw)
	if err != nil {
		if !errors.Is(err, phoneformat.ErrParse) {
			return nil, apperrors.Internal("Failed to format phone number", err)
		}
		if strict {
			return nil, apperrors.Unprocessable("Phone number could not be parsed", err)
		}
		res.Formatted = raw
		res.Fallback = true
		res.Error = err.Error()
		return res, nil
	}

	res.Formatted = resolved.Formatted
	res.CountryCode = resolved.Candidate.CountryCode
	res.Region = n.Plan().RegionForNumber(resolved.Number)
	res.CountryName = locale.CountryName(res.Region)
	res.Style = resolved.Style.String()
	res.Extension = resolved.Candidate.Extension
	return res, nil
}

func errorText(err error) string {
	if appErr := apperrors.AsAppError(err); appErr.Err != nil {
		return appErr.Err.Error()
	}
	return err.Error()
}
