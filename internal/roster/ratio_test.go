package roster

import (
	"testing"

	"protocol-tracker/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func TestWeightSum(t *testing.T) {
	weights := WeightSets[RatioV1]

	tests := []struct {
		name string
		trio domain.Trio
		want int
	}{
		{"known protocols", domain.Trio{"SPIRIT", "WATER", "HATE"}, 1 + 3 + 5},
		{"unknown protocol weighs zero", domain.Trio{"UNKNOWN", "FIRE", "WATER"}, 0 + 5 + 3},
		{"all zero", domain.Trio{"METAL", "METAL", "APATHY"}, 0},
		{"empty", domain.Trio{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightSum(tt.trio, weights); got != tt.want {
				t.Errorf("WeightSum(%v) = %d, want %d", tt.trio, got, tt.want)
			}
		})
	}
}

func TestWeightSumOrderInvariant(t *testing.T) {
	weights := WeightSets[RatioV1]
	perms := []domain.Trio{
		{"FIRE", "LIFE", "SPEED"},
		{"FIRE", "SPEED", "LIFE"},
		{"LIFE", "FIRE", "SPEED"},
		{"LIFE", "SPEED", "FIRE"},
		{"SPEED", "FIRE", "LIFE"},
		{"SPEED", "LIFE", "FIRE"},
	}
	for _, p := range perms {
		if got := WeightSum(p, weights); got != 8 {
			t.Errorf("WeightSum(%v) = %d, want 8", p, got)
		}
	}
}

func TestWeightSumNilTable(t *testing.T) {
	if got := WeightSum(domain.Trio{"FIRE", "WATER", "LIFE"}, nil); got != 0 {
		t.Errorf("WeightSum with nil table = %d, want 0", got)
	}
}

func TestIsRatioBattle(t *testing.T) {
	weights := WeightSets[RatioV1]
	teamA := domain.Trio{"FIRE", "WATER", "METAL"} // 8
	teamB := domain.Trio{"LIFE", "SPIRIT", "SPEED"} // 4

	if !IsRatioBattle(teamA, teamB, weights, 8) {
		t.Error("expected ratio battle at threshold 8")
	}
	if IsRatioBattle(teamA, teamB, weights, 5) {
		t.Error("expected no ratio battle at threshold 5")
	}
	if IsRatioBattle(teamA, teamB, weights, 7) {
		t.Error("one side above the threshold must not be a ratio battle")
	}
}

func TestIsRatioBattleBoundary(t *testing.T) {
	weights := domain.WeightTable{"FIRE": 5, "WATER": 3, "METAL": 0}
	a := domain.Trio{"FIRE", "WATER", "METAL"}
	b := domain.Trio{"METAL", "METAL", "METAL"}

	if !IsRatioBattle(a, b, weights, 8) {
		t.Error("sum equal to the threshold should count as a ratio battle")
	}
}

func TestIsRatioBattleSymmetric(t *testing.T) {
	weights := WeightSets[RatioV1]
	trios := []domain.Trio{
		{"FIRE", "WATER", "METAL"},
		{"LIFE", "SPIRIT", "SPEED"},
		{"DARKNESS", "PSYCHIC", "HATE"},
		{"APATHY", "METAL", "LIGHT"},
	}
	for _, a := range trios {
		for _, b := range trios {
			for _, max := range []int{0, 4, 8, 15} {
				if IsRatioBattle(a, b, weights, max) != IsRatioBattle(b, a, weights, max) {
					t.Errorf("IsRatioBattle not symmetric for %v / %v at %d", a, b, max)
				}
			}
		}
	}
}

func TestGroups(t *testing.T) {
	got := Groups(Sets[SetV1], WeightSets[RatioV1])
	want := []RatioGroup{
		{Weight: 5, Protocols: []domain.Protocol{"DARKNESS", "FIRE", "PSYCHIC"}},
		{Weight: 3, Protocols: []domain.Protocol{"DEATH", "GRAVITY", "WATER"}},
		{Weight: 2, Protocols: []domain.Protocol{"LIFE", "PLAGUE"}},
		{Weight: 1, Protocols: []domain.Protocol{"LIGHT", "SPEED", "SPIRIT"}},
		{Weight: 0, Protocols: []domain.Protocol{"METAL"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Groups mismatch (-want +got):\n%s", diff)
	}
}

func TestAbbr(t *testing.T) {
	if got := Abbr("DARKNESS"); got != "DAR" {
		t.Errorf("Abbr(DARKNESS) = %q", got)
	}
	if got := Abbr("UNLISTED"); got != "UNL" {
		t.Errorf("Abbr(UNLISTED) = %q", got)
	}
}

func TestSetsAreCumulative(t *testing.T) {
	base := Sets[SetV1]
	aux := Sets[SetV1Aux]
	if len(aux) != len(base)+3 {
		t.Fatalf("V1_AUX has %d protocols, want %d", len(aux), len(base)+3)
	}
	for i, p := range base {
		if aux[i] != p {
			t.Errorf("V1_AUX[%d] = %s, want %s", i, aux[i], p)
		}
	}
}
