package notify

import (
	"bytes"
	"testing"
	"time"
)

func TestBannerReplacesAndExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewBanner(3 * time.Second)
	b.now = func() time.Time { return now }

	if _, ok := b.Current(); ok {
		t.Fatal("Expected no notice before any notification")
	}

	b.Notify("Task created successfully")
	b.Notify("Task deleted")
	n, ok := b.Current()
	if !ok || n.Message != "Task deleted" {
		t.Errorf("Expected latest message to replace the old one, got %+v", n)
	}

	now = now.Add(3 * time.Second)
	if _, ok := b.Current(); ok {
		t.Error("Expected notice to be hidden after ttl")
	}
}

func TestMultiAndWriter(t *testing.T) {
	var buf bytes.Buffer
	b := NewBanner(0)
	m := Multi{Writer{W: &buf}, b}

	m.Notify("Task completed")

	if buf.String() != "Task completed\n" {
		t.Errorf("Expected written message, got %q", buf.String())
	}
	if n, ok := b.Current(); !ok || n.Message != "Task completed" {
		t.Errorf("Expected banner to receive message, got %+v", n)
	}
}
