package i18n

import (
	"net/http/httptest"
	"testing"
)

func TestTranslate(t *testing.T) {
	if got := T("hu", "InvalidLogin"); got != "Hibás bejelentkezés." {
		t.Errorf("unexpected hu translation: %q", got)
	}
	if got := T("en", "InvalidLogin"); got != "Invalid login." {
		t.Errorf("unexpected en translation: %q", got)
	}
}

func TestTranslateFallsBackToDefault(t *testing.T) {
	if got := T("de", "InvalidLogin"); got != "Hibás bejelentkezés." {
		t.Errorf("expected fallback to hu, got %q", got)
	}
}

func TestTranslateUnknownKeyReturnsKey(t *testing.T) {
	if got := T("hu", "NoSuchKey"); got != "NoSuchKey" {
		t.Errorf("expected key passthrough, got %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if lang := DetectLanguage(r); lang != "hu" {
		t.Errorf("expected default hu, got %q", lang)
	}

	r.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if lang := DetectLanguage(r); lang != "en" {
		t.Errorf("expected en, got %q", lang)
	}

	r.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	if lang := DetectLanguage(r); lang != "hu" {
		t.Errorf("expected hu for unsupported language, got %q", lang)
	}
}
