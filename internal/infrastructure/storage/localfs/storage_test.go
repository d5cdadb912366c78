package localfs

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestUploadAndOpenRoundTrip(t *testing.T) {
	store, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}

	url, err := store.Upload(context.Background(), "1721037600_payslip.pdf", bytes.NewReader([]byte("%PDF")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(url, "file://") {
		t.Fatalf("expected file url without public base, got %q", url)
	}

	reader, err := store.Open(context.Background(), "1721037600_payslip.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestUploadBuildsPublicURL(t *testing.T) {
	store, err := New(t.TempDir(), "https://files.example.com/")
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}

	url, err := store.Upload(context.Background(), "a b.pdf", bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://files.example.com/a%20b.pdf" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestOpenMissingKeyFails(t *testing.T) {
	store, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}

	if _, err := store.Open(context.Background(), "missing.pdf"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
