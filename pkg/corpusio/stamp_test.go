package corpusio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClaimAndCommit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "gazette-1900.jsonl.gz")

	lease, claimed, err := Claim(target, time.Hour)
	if err != nil || !claimed {
		t.Fatalf("expected claim to succeed, err=%v claimed=%v", err, claimed)
	}

	if err := os.WriteFile(lease.WorkingPath(), []byte("data"), 0o644); err != nil {
		t.Fatalf("write working file: %v", err)
	}
	if err := lease.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected final path to exist: %v", err)
	}
	if _, err := os.Stat(target + ".done"); err != nil {
		t.Fatalf("expected .done stamp: %v", err)
	}
	if _, err := os.Stat(target + ".running"); !os.IsNotExist(err) {
		t.Fatalf("expected .running stamp to be gone")
	}
}

func TestClaimSkipsFreshDone(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "gazette-1900.jsonl.gz")
	if err := os.WriteFile(target+".done", nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, claimed, err := Claim(target, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claimed {
		t.Fatalf("expected fresh .done to prevent claim")
	}
}

func TestClaimIsExclusive(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "gazette-1900.jsonl.gz")

	_, claimed1, err := Claim(target, time.Hour)
	if err != nil || !claimed1 {
		t.Fatalf("first claim should succeed")
	}
	_, claimed2, err := Claim(target, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error on second claim: %v", err)
	}
	if claimed2 {
		t.Fatalf("second claim should be rejected while .running exists")
	}
}
