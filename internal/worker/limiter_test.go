package worker

import (
	"testing"
)

func TestLimiter_PerHostBudgets(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://a.example.com/page") {
		t.Error("first request to a host should be allowed")
	}
	if l.Allow("https://a.example.com/other") {
		t.Error("second immediate request to same host should be limited")
	}
	if !l.Allow("https://b.example.com/page") {
		t.Error("different host has its own budget")
	}
}

func TestLimiter_BadURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if l.Allow("://not-a-url") {
		t.Error("unparseable URL should not be allowed")
	}
}
