package token

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tk := New("asset")
	if !strings.HasPrefix(tk, "asset_") {
		t.Errorf("token has wrong prefix: %s", tk)
	} else if len(tk) != len("asset_")+tokenLength {
		t.Errorf("token has wrong length: %s", tk)
	}
}

func TestRandStrUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1024; i++ {
		s := RandStr()
		if seen[s] {
			t.Fatalf("duplicate random string: %s", s)
		}
		seen[s] = true
	}
}
