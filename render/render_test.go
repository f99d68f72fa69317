package render

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRenderIndex(t *testing.T) {
	rn := New()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	rn.Render(w, r, "index.html", map[string]any{"BasePath": ""})

	body := w.Body.String()
	if !strings.Contains(body, "<title>Tanösvény</title>") {
		t.Errorf("default title missing: %s", body)
	}
	if !strings.Contains(body, "Bejelentkezés") {
		t.Error("anonymous layout should offer login")
	}
}

func TestRenderSetsLangFromRequest(t *testing.T) {
	rn := New()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept-Language", "en-US,en;q=0.9")
	rn.Render(w, r, "index.html", map[string]any{"BasePath": ""})

	if !strings.Contains(w.Body.String(), `<html lang="en">`) {
		t.Error("lang attribute not taken from Accept-Language")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	rn := New()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	rn.Render(w, r, "no-such.html", nil)

	if w.Code != 500 {
		t.Errorf("expected 500 for missing template, got %d", w.Code)
	}
}

func TestAllPagesPresent(t *testing.T) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		t.Fatal(err)
	}
	have := map[string]bool{}
	for _, e := range entries {
		have[e.Name()] = true
	}

	pages := []string{
		"layout.html", "index.html", "catalog.html", "contact.html",
		"contact-success.html", "inbox.html", "login.html", "register.html",
		"admin.html", "trail-list.html", "trail-form.html",
	}
	for _, page := range pages {
		if !have[page] {
			t.Errorf("template %s is missing", page)
		}
	}
}
