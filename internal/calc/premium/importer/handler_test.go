package importer

import "testing"

func TestParseWallRow(t *testing.T) {
	t.Parallel()

	in, err := parseWallRow([]string{"48", "concrete", "flat", "stiff", "minimize_excavation", "6", "12", "yes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.HeightIn != 48 || in.ToppingDepthIn != 6 || in.ToeLengthIn != 12 || !in.HasAdjacentSlab {
		t.Fatalf("row parsed wrong: %+v", in)
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("parsed row should validate: %v", err)
	}
}

func TestParseWallRow_OptionalColumns(t *testing.T) {
	t.Parallel()

	in, err := parseWallRow([]string{"96", "cmu", "1:2", "soft"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.HasAdjacentSlab || in.ToeLengthIn != 0 {
		t.Fatalf("optional columns should default: %+v", in)
	}
}

func TestParseWallRow_BadRows(t *testing.T) {
	t.Parallel()

	if _, err := parseWallRow([]string{"48", "concrete"}); err == nil {
		t.Fatalf("expected error for short row")
	}
	if _, err := parseWallRow([]string{"tall", "concrete", "flat", "stiff"}); err == nil {
		t.Fatalf("expected error for non-numeric height")
	}
}
