package textpress

import "testing"

func TestCodeStorePut(t *testing.T) {
	s := newCodeStore(16)
	if err := s.Put(42, 7); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	code, ok := s.Code(42)
	if !ok || code != 7 {
		t.Fatalf("code mismatch: got %d (%v), want 7", code, ok)
	}
	if _, ok = s.Code(41); ok {
		t.Fatalf("expected no code at position 41")
	}
	if _, ok = s.Code(100); ok {
		t.Fatalf("expected no code beyond the store")
	}
}

func TestCodeStoreOverwrite(t *testing.T) {
	s := newCodeStore(16)
	if err := s.Put(7, 1); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if err := s.Put(7, 2); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	if code, _ := s.Code(7); code != 2 {
		t.Fatalf("code mismatch after overwrite: got %d, want 2", code)
	}
	if s.Len() != 1 {
		t.Fatalf("store counts %d codes, want 1", s.Len())
	}
}

func TestCodeStoreRejectsInvalid(t *testing.T) {
	s := newCodeStore(16)
	if err := s.Put(0, 1); err == nil {
		t.Fatalf("expected error for position 0")
	}
	if err := s.Put(3, absentCode); err == nil {
		t.Fatalf("expected error for reserved code")
	}
}
