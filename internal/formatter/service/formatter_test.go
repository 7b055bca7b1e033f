package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"phonefmt/internal/formatter/validator"
	"phonefmt/pkg/config"
	apperrors "phonefmt/pkg/errors"
	"phonefmt/pkg/logger"
	"phonefmt/pkg/model"
)

func newTestService(t *testing.T, homeRegion string, maxBatch int) FormatterService {
	t.Helper()
	log := logger.Discard()
	cfg := &config.Config{
		HomeRegion:   homeRegion,
		MaxBatchSize: maxBatch,
		Log:          log,
	}
	return NewFormatterService(nil, validator.NewFormatValidator(log), cfg)
}

func TestFormatterService_Format(t *testing.T) {
	svc := newTestService(t, "CA", 10)

	tests := []struct {
		name string
		req  *model.FormatRequest
		want *model.FormatResult
	}{
		{
			name: "home number",
			req:  &model.FormatRequest{Number: "604.788.0877"},
			want: &model.FormatResult{
				Input:       "604.788.0877",
				Formatted:   "(604) 788-0877",
				HomeRegion:  "CA",
				CountryCode: 1,
				Region:      "CA",
				CountryName: "Canada",
				Style:       "national",
			},
		},
		{
			name: "foreign number",
			req:  &model.FormatRequest{Number: "+44 20 7183 8750"},
			want: &model.FormatResult{
				Input:       "+44 20 7183 8750",
				Formatted:   "011 44 20 7183 8750",
				HomeRegion:  "CA",
				CountryCode: 44,
				Region:      "GB",
				CountryName: "United Kingdom",
				Style:       "out_of_country",
			},
		},
		{
			name: "extension kept verbatim",
			req:  &model.FormatRequest{Number: "6047880877 ext. 12"},
			want: &model.FormatResult{
				Input:       "6047880877 ext. 12",
				Formatted:   "(604) 788-0877 ext. 12",
				HomeRegion:  "CA",
				CountryCode: 1,
				Region:      "CA",
				CountryName: "Canada",
				Style:       "national",
				Extension:   "ext. 12",
			},
		},
		{
			name: "timezone picks home region",
			req:  &model.FormatRequest{Number: "6047880877", Timezone: "Europe/London"},
			want: &model.FormatResult{
				Input:       "6047880877",
				Formatted:   "00 1 604-788-0877",
				HomeRegion:  "GB",
				CountryCode: 1,
				Region:      "CA",
				CountryName: "Canada",
				Style:       "out_of_country",
			},
		},
		{
			name: "explicit region wins over timezone",
			req:  &model.FormatRequest{Number: "6047880877", HomeRegion: "us", Timezone: "Europe/London"},
			want: &model.FormatResult{
				Input:       "6047880877",
				Formatted:   "(604) 788-0877",
				HomeRegion:  "US",
				CountryCode: 1,
				Region:      "CA",
				CountryName: "Canada",
				Style:       "national",
			},
		},
		{
			name: "bypass pattern",
			req:  &model.FormatRequest{Number: "email"},
			want: &model.FormatResult{Input: "email", Formatted: "email", HomeRegion: "CA", Bypassed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Format(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatterService_Format_UnknownTimezoneUsesConfiguredRegion(t *testing.T) {
	svc := newTestService(t, "GB", 10)

	got, err := svc.Format(context.Background(), &model.FormatRequest{Number: "6047880877", Timezone: "Asia/Tokyo"})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got.HomeRegion != "GB" || got.Formatted != "00 1 604-788-0877" {
		t.Errorf("Format() = %+v, want GB home region", got)
	}
}

func TestFormatterService_Format_Unparseable(t *testing.T) {
	svc := newTestService(t, "CA", 10)

	res, err := svc.Format(context.Background(), &model.FormatRequest{Number: "abc"})
	if err != nil {
		t.Fatalf("non-strict Format() error = %v", err)
	}
	if !res.Fallback || res.Formatted != "abc" || res.Error == "" {
		t.Errorf("non-strict result = %+v, want fallback to input", res)
	}

	_, err = svc.Format(context.Background(), &model.FormatRequest{Number: "abc", Strict: true})
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeUnparseable {
		t.Errorf("strict Format() error = %v, want %s", err, apperrors.CodeUnparseable)
	}

	_, err = svc.Format(context.Background(), &model.FormatRequest{Number: "email", Strict: true})
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeUnparseable {
		t.Errorf("strict mode must not bypass, got %v", err)
	}
}

func TestFormatterService_Format_Validation(t *testing.T) {
	svc := newTestService(t, "CA", 10)

	for _, req := range []*model.FormatRequest{
		{Number: ""},
		{Number: "6047880877", HomeRegion: "ZZ"},
		{Number: "6047880877", Timezone: "Nowhere/Land"},
	} {
		_, err := svc.Format(context.Background(), req)
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
			t.Errorf("Format(%+v) error = %v, want validation error", req, err)
		}
	}
}

func TestFormatterService_FormatBatch(t *testing.T) {
	svc := newTestService(t, "CA", 3)

	results, failed, err := svc.FormatBatch(context.Background(), &model.BatchFormatRequest{
		Numbers: []string{"6047880877", "abc", "+44 20 7183 8750"},
		Strict:  true,
	})
	if err != nil {
		t.Fatalf("FormatBatch() error = %v", err)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}

	got := make([]string, 0, len(results))
	for _, r := range results {
		got = append(got, r.Formatted)
	}
	if diff := cmp.Diff([]string{"(604) 788-0877", "", "011 44 20 7183 8750"}, got); diff != "" {
		t.Errorf("formatted mismatch (-want +got):\n%s", diff)
	}
	if results[1].Input != "abc" || results[1].Error == "" {
		t.Errorf("failed entry = %+v", results[1])
	}

	_, _, err = svc.FormatBatch(context.Background(), &model.BatchFormatRequest{
		Numbers: []string{"1", "2", "3", "4"},
	})
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
		t.Errorf("oversized batch error = %v, want validation error", err)
	}
}

func TestFormatterService_FormatBatch_Cancelled(t *testing.T) {
	svc := newTestService(t, "CA", 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.FormatBatch(ctx, &model.BatchFormatRequest{Numbers: []string{"6047880877"}})
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeTimeout {
		t.Errorf("FormatBatch() error = %v, want timeout", err)
	}
}

func TestFormatterService_Ready(t *testing.T) {
	if err := newTestService(t, "CA", 1).Ready(context.Background()); err != nil {
		t.Errorf("Ready() = %v", err)
	}
	if err := newTestService(t, "ZZ", 1).Ready(context.Background()); err == nil {
		t.Error("Ready() should fail for an unknown home region")
	}
}
