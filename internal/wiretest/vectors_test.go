package wiretest

import (
	"testing"
)

func TestLoadVarintVectors(t *testing.T) {
	vectors, err := LoadVarintVectors()
	if err != nil {
		t.Fatalf("LoadVarintVectors: %v", err)
	}
	if len(vectors) == 0 {
		t.Fatal("expected at least one golden vector")
	}
	for _, v := range vectors {
		if len(v.Encoded) == 0 {
			t.Errorf("vector %q has empty encoding", v.Name)
		}
	}
}

func TestRandomConnIDLength(t *testing.T) {
	for _, n := range []int{0, 1, 4, 16, 20} {
		got := RandomConnID(n)
		if len(got) != n {
			t.Errorf("RandomConnID(%d) returned %d bytes", n, len(got))
		}
	}
}

func TestTruncatedPrefixes(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	prefixes := TruncatedPrefixes(buf)
	if len(prefixes) != len(buf)-1 {
		t.Fatalf("expected %d prefixes, got %d", len(buf)-1, len(prefixes))
	}
	for i, p := range prefixes {
		if len(p) != i+1 {
			t.Errorf("prefix %d has length %d, want %d", i, len(p), i+1)
		}
	}
}
