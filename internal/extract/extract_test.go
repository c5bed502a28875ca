package extract

import (
	"context"
	"strings"
	"testing"
)

func TestTextFromBytesPlainText(t *testing.T) {
	text, err := TextFromBytes(context.Background(), []byte("  Senior Go engineer, 5 years.  \n"), "text/plain", "jd.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "Senior Go engineer, 5 years." {
		t.Errorf("text = %q", text)
	}
}

func TestTextFromBytesExtensionFallback(t *testing.T) {
	text, err := TextFromBytes(context.Background(), []byte("markdown body"), "application/octet-stream", "jd.md")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "markdown body" {
		t.Errorf("text = %q", text)
	}
}

func TestTextFromBytesUnsupported(t *testing.T) {
	_, err := TextFromBytes(context.Background(), []byte{0x00, 0x01}, "image/png", "photo.png")
	if err == nil || !strings.Contains(err.Error(), "unsupported mime type") {
		t.Fatalf("err = %v, want unsupported mime type", err)
	}
}

func TestTextFromBytesInvalidPDF(t *testing.T) {
	if _, err := TextFromBytes(context.Background(), []byte("not a pdf"), "application/pdf", "jd.pdf"); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}

func TestTextFromBytesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := TextFromBytes(ctx, []byte("text"), "text/plain", "jd.txt"); err == nil {
		t.Fatal("expected context error")
	}
}
