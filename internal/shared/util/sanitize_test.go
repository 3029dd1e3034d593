package util

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "resume.pdf", want: "resume.pdf"},
		{name: "separators", in: "a/b\\c.pdf", want: "a_b_c.pdf"},
		{name: "traversal", in: "../etc/passwd", wantErr: true},
		{name: "blank", in: "  ", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFileName) {
					t.Fatalf("expected ErrInvalidFileName, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	if got := Extension("CV.PDF"); got != "pdf" {
		t.Fatalf("expected pdf, got %q", got)
	}
	if got := Extension("resume"); got != "" {
		t.Fatalf("expected empty extension, got %q", got)
	}
}

func TestSniffKeepsFullStream(t *testing.T) {
	body := "%PDF-1.4\n" + strings.Repeat("x", 1000)
	r, mimeType, err := Sniff(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if mimeType != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", mimeType)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != body {
		t.Fatalf("expected full body to be preserved")
	}
}
