package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextFor(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestFromContext_Defaults(t *testing.T) {
	p := FromContext(contextFor(""))

	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected default offset 0, got %d", p.Offset)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	p := FromContext(contextFor("?limit=50&offset=10"))

	if p.Limit != 50 {
		t.Errorf("expected limit 50, got %d", p.Limit)
	}
	if p.Offset != 10 {
		t.Errorf("expected offset 10, got %d", p.Offset)
	}
}

func TestFromContext_MaxLimit(t *testing.T) {
	p := FromContext(contextFor("?limit=500"))

	if p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContext_InvalidValues(t *testing.T) {
	p := FromContext(contextFor("?limit=abc&offset=-3"))

	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	p := Params{Limit: 20, Offset: 0}

	if r := NewResponse(nil, 20, p); !r.HasMore {
		t.Error("full page should report has_more")
	}
	if r := NewResponse(nil, 7, p); r.HasMore {
		t.Error("partial page should not report has_more")
	}
}

func TestOffsets(t *testing.T) {
	p := Params{Limit: 20, Offset: 10}

	if got := p.NextOffset(); got != 30 {
		t.Errorf("NextOffset = %d, want 30", got)
	}
	if got := p.PreviousOffset(); got != 0 {
		t.Errorf("PreviousOffset = %d, want 0", got)
	}

	p = Params{Limit: 20, Offset: 60}
	if got := p.PreviousOffset(); got != 40 {
		t.Errorf("PreviousOffset = %d, want 40", got)
	}
}
