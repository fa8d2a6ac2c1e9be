package match

import "testing"

func TestScoreTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		query  string
		target string
		want   int
	}{
		{"exact", "auth", "auth", 1000},
		{"exact case insensitive", "AUTH", "auth", 1000},
		{"prefix", "auth", "auth-service", 500},
		{"substring", "auth", "feat-auth-flow", 200},
		{"subsequence", "afw", "auth-flow", 50},
		{"no match", "xyz", "auth", 0},
		{"reversed subsequence", "wfa", "auth-flow", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.query, tt.target); got != tt.want {
				t.Errorf("Score(%q, %q) = %d, want %d", tt.query, tt.target, got, tt.want)
			}
		})
	}
}

func TestScoreMonotonicTiers(t *testing.T) {
	t.Parallel()

	// Each tier scores strictly above the next one down.
	exact := Score("auth", "auth")
	prefix := Score("auth", "auth-flow")
	substring := Score("auth", "my-auth-flow")
	subsequence := Score("af", "auth-flow-x")
	none := Score("zz", "auth")

	if !(exact > prefix && prefix > substring && substring > subsequence && subsequence > none) {
		t.Errorf("tier ordering violated: %d %d %d %d %d", exact, prefix, substring, subsequence, none)
	}
}

func TestRankExactBeatsSubstring(t *testing.T) {
	t.Parallel()

	candidates := []Candidate{
		{ProjectName: "app", Branch: "feat-auth-flow", Path: "/wt/feat-auth-flow"},
		{ProjectName: "app", Branch: "auth", Path: "/wt/auth"},
	}

	matches := Rank("auth", candidates)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Branch != "auth" {
		t.Errorf("exact match should rank first, got %q", matches[0].Branch)
	}
	if !Unambiguous(matches) {
		t.Error("1000 vs 200 should be unambiguous")
	}
}

func TestRankProjectNameHalfWeight(t *testing.T) {
	t.Parallel()

	candidates := []Candidate{
		// Project name matches exactly: 1000/2 = 500.
		{ProjectName: "billing", Branch: "main", Path: "/code/billing"},
		// Branch substring match: 200.
		{ProjectName: "app", Branch: "fix-billing-rounding", Path: "/wt/fix-billing-rounding"},
	}

	matches := Rank("billing", candidates)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].ProjectName != "billing" || matches[0].Score != 500 {
		t.Errorf("project exact match should score 500 and rank first, got %+v", matches[0])
	}
}

func TestRankDetachedFallsBackToPathSegment(t *testing.T) {
	t.Parallel()

	candidates := []Candidate{
		{ProjectName: "app", Branch: "", Path: "/wt/bisect-area"},
	}

	matches := Rank("bisect", candidates)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Score != 500 {
		t.Errorf("path segment prefix should score 500, got %d", matches[0].Score)
	}
}

func TestRankDropsZeroScores(t *testing.T) {
	t.Parallel()

	candidates := []Candidate{
		{ProjectName: "app", Branch: "main", Path: "/code/app"},
	}
	if matches := Rank("zzz", candidates); len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestRankStableOnTies(t *testing.T) {
	t.Parallel()

	candidates := []Candidate{
		{ProjectName: "a", Branch: "feat-x", Path: "/wt/feat-x"},
		{ProjectName: "b", Branch: "feat-y", Path: "/wt/feat-y"},
	}

	matches := Rank("feat", candidates)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].ProjectName != "a" || matches[1].ProjectName != "b" {
		t.Error("equal scores should keep discovery order")
	}
}

func TestUnambiguous(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []int
		want   bool
	}{
		{"empty", nil, false},
		{"single", []int{50}, true},
		{"decisive", []int{1000, 200}, true},
		{"near tie", []int{500, 500}, false},
		{"exactly 1.5x is not enough", []int{300, 200}, false},
		{"just above 1.5x", []int{301, 200}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var matches []Match
			for _, s := range tt.scores {
				matches = append(matches, Match{Score: s})
			}
			if got := Unambiguous(matches); got != tt.want {
				t.Errorf("Unambiguous(%v) = %v, want %v", tt.scores, got, tt.want)
			}
		})
	}
}
