package activity

import (
	"os"
	"path/filepath"
	"testing"
)

func writeScrobbles(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scrobbles.csv")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseLastFM(t *testing.T) {
	csv := `Boards of Canada,Geogaddi,Music Is Math,03 Feb 2024 18:12
Boards of Canada,Geogaddi,Sunshine Recorder,03 Feb 2024 18:18
Autechre,Amber,Montreal,04 Feb 2024 09:01
`
	s, err := ParseLastFM(writeScrobbles(t, csv))
	if err != nil {
		t.Fatalf("ParseLastFM: %v", err)
	}
	if s.Total != 3 {
		t.Errorf("total = %d, want 3", s.Total)
	}
	if s.TopArtist != "Boards of Canada" {
		t.Errorf("top artist = %q, want Boards of Canada", s.TopArtist)
	}
	if len(s.Daily) != 2 {
		t.Fatalf("daily rows = %d, want 2", len(s.Daily))
	}
	if s.Daily[0].Count != 2 || s.Daily[1].Count != 1 {
		t.Errorf("daily counts = %d, %d, want 2, 1", s.Daily[0].Count, s.Daily[1].Count)
	}
}

func TestParseLastFM_SkipsShortRows(t *testing.T) {
	csv := `broken row
Autechre,Amber,Montreal,04 Feb 2024 09:01
`
	s, err := ParseLastFM(writeScrobbles(t, csv))
	if err != nil {
		t.Fatalf("ParseLastFM: %v", err)
	}
	if s.Total != 1 {
		t.Errorf("total = %d, want 1 (short row skipped)", s.Total)
	}
}

func TestTopKey_DeterministicTie(t *testing.T) {
	counts := map[string]int{"b": 2, "a": 2, "c": 1}
	if got := topKey(counts); got != "a" {
		t.Errorf("topKey = %q, want lexicographically first on ties", got)
	}
	if got := topKey(nil); got != "" {
		t.Errorf("topKey(nil) = %q, want empty", got)
	}
}
