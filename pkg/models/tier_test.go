package models

import "testing"

func TestTierValid(t *testing.T) {
	for _, tier := range []Tier{Tier1, Tier2, Tier3} {
		if !tier.Valid() {
			t.Errorf("expected tier %d to be valid", tier)
		}
	}

	for _, tier := range []Tier{0, 4, -1} {
		if tier.Valid() {
			t.Errorf("expected tier %d to be invalid", tier)
		}
	}
}

func TestRunStatusValid(t *testing.T) {
	for _, s := range []RunStatus{RunStatusActive, RunStatusExtracted, RunStatusAbandoned} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if RunStatus("closed").Valid() {
		t.Error("expected 'closed' to be invalid")
	}

	if RunStatusActive.Terminal() {
		t.Error("active run should not be terminal")
	}
	if !RunStatusExtracted.Terminal() {
		t.Error("extracted run should be terminal")
	}
}
