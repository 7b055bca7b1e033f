package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/julienschmidt/httprouter"

	apperrors "phonefmt/pkg/errors"
	"phonefmt/pkg/logger"
	"phonefmt/pkg/model"
)

type mockFormatterService struct {
	formatFunc      func(ctx context.Context, req *model.FormatRequest) (*model.FormatResult, error)
	formatBatchFunc func(ctx context.Context, req *model.BatchFormatRequest) ([]*model.FormatResult, int, error)
}

func (m *mockFormatterService) Format(ctx context.Context, req *model.FormatRequest) (*model.FormatResult, error) {
	if m.formatFunc != nil {
		return m.formatFunc(ctx, req)
	}
	return &model.FormatResult{Input: req.Number, Formatted: req.Number}, nil
}

func (m *mockFormatterService) FormatBatch(ctx context.Context, req *model.BatchFormatRequest) ([]*model.FormatResult, int, error) {
	if m.formatBatchFunc != nil {
		return m.formatBatchFunc(ctx, req)
	}
	return nil, 0, nil
}

func (m *mockFormatterService) Ready(ctx context.Context) error {
	return nil
}

func newTestRouter(svc *mockFormatterService) *httprouter.Router {
	router := httprouter.New()
	NewFormatterHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestFormat(t *testing.T) {
	var received *model.FormatRequest
	svc := &mockFormatterService{
		formatFunc: func(ctx context.Context, req *model.FormatRequest) (*model.FormatResult, error) {
			received = req
			if req.Number == "abc" {
				return nil, apperrors.Unprocessable("Phone number could not be parsed", nil)
			}
			return &model.FormatResult{Input: req.Number, Formatted: "(604) 788-0877", HomeRegion: "CA", Style: "national"}, nil
		},
	}
	router := newTestRouter(svc)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "ok", body: `{"number":"6047880877","home_region":"CA","strict":true}`, wantStatus: http.StatusOK},
		{name: "unparseable", body: `{"number":"abc"}`, wantStatus: http.StatusUnprocessableEntity, wantCode: apperrors.CodeUnparseable},
		{name: "malformed json", body: `{"number":`, wantStatus: http.StatusBadRequest, wantCode: apperrors.CodeInvalidInput},
		{name: "unknown field", body: `{"phone":"6047880877"}`, wantStatus: http.StatusBadRequest, wantCode: apperrors.CodeInvalidInput},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest, wantCode: apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/v1/phone-numbers/format", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantCode != "" {
				var body apperrors.ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if body.Code != tt.wantCode {
					t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
				}
				return
			}

			var body struct {
				Data model.FormatResult `json:"data"`
			}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Data.Formatted != "(604) 788-0877" {
				t.Errorf("formatted = %q", body.Data.Formatted)
			}
			want := &model.FormatRequest{Number: "6047880877", HomeRegion: "CA", Strict: true}
			if diff := cmp.Diff(want, received); diff != "" {
				t.Errorf("service request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatQuery(t *testing.T) {
	var received *model.FormatRequest
	router := newTestRouter(&mockFormatterService{
		formatFunc: func(ctx context.Context, req *model.FormatRequest) (*model.FormatResult, error) {
			received = req
			return &model.FormatResult{Input: req.Number, Formatted: "011 44 20 7183 8750"}, nil
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/phone-numbers/format?number=%2B44+20+7183+8750&home_region=CA", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	want := &model.FormatRequest{Number: "+44 20 7183 8750", HomeRegion: "CA", Strict: true}
	if diff := cmp.Diff(want, received); diff != "" {
		t.Errorf("service request mismatch (-want +got):\n%s", diff)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/phone-numbers/format", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing number: status = %d, want 400", w.Code)
	}
}

func TestFormatBatch(t *testing.T) {
	router := newTestRouter(&mockFormatterService{
		formatBatchFunc: func(ctx context.Context, req *model.BatchFormatRequest) ([]*model.FormatResult, int, error) {
			out := make([]*model.FormatResult, 0, len(req.Numbers))
			for _, n := range req.Numbers {
				out = append(out, &model.FormatResult{Input: n, Formatted: n})
			}
			return out, 1, nil
		},
	})

	r := httptest.NewRequest(http.MethodPost, "/api/v1/phone-numbers/format/batch", strings.NewReader(`{"numbers":["1","2"]}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var body struct {
		Data   []model.FormatResult `json:"data"`
		Count  int                  `json:"count"`
		Failed int                  `json:"failed"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 2 || body.Failed != 1 || len(body.Data) != 2 || body.Data[1].Input != "2" {
		t.Errorf("unexpected batch body %+v", body)
	}
}
