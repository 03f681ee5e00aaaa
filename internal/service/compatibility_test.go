package service

import (
	"reflect"
	"testing"

	"peer-match/internal/domain"
)

func profileWith(mod func(p *domain.UserProfile)) domain.UserProfile {
	p := domain.UserProfile{
		ID:                 "user-a",
		DisplayName:        "A",
		Age:                25,
		Challenges:         []string{"anxiety", "sleep"},
		Goals:              []string{"mindfulness"},
		ExperienceLevel:    domain.ExperienceBeginner,
		CommunicationStyle: domain.StyleGentle,
		Timezone:           "America/Bogota",
	}
	if mod != nil {
		mod(&p)
	}
	return p
}

func TestCompatibilityScoreNearIdenticalProfiles(t *testing.T) {
	a := profileWith(nil)
	b := profileWith(func(p *domain.UserProfile) {
		p.ID = "user-b"
		p.Age = 27
	})

	got := CompatibilityScore(a, b)
	if got.Score != 100 {
		t.Fatalf("CompatibilityScore = %d; want 100", got.Score)
	}
	if !reflect.DeepEqual(got.SharedChallenges, []string{"anxiety", "sleep"}) {
		t.Fatalf("SharedChallenges = %v", got.SharedChallenges)
	}
	if !reflect.DeepEqual(got.ComplementaryGoals, []string{"mindfulness"}) {
		t.Fatalf("ComplementaryGoals = %v", got.ComplementaryGoals)
	}
}

func TestCompatibilityScoreLowAffinityPair(t *testing.T) {
	a := profileWith(func(p *domain.UserProfile) {
		p.Challenges = []string{"anxiety"}
		p.Goals = nil
	})
	b := profileWith(func(p *domain.UserProfile) {
		p.ID = "user-b"
		p.Challenges = []string{"depression"}
		p.Goals = nil
		p.CommunicationStyle = domain.StyleDirect
		p.ExperienceLevel = domain.ExperienceExperienced
		p.Age = 45
	})

	// 30*0 + 25*0 + 20*0.6 + 15*0.4 + 10*0.4 = 22
	got := CompatibilityScore(a, b)
	if got.Score != 22 {
		t.Fatalf("CompatibilityScore = %d; want 22", got.Score)
	}
	if len(got.SharedChallenges) != 0 || len(got.ComplementaryGoals) != 0 {
		t.Fatalf("expected empty intersections, got %v / %v", got.SharedChallenges, got.ComplementaryGoals)
	}
}

func TestCompatibilityScoreEmptyTagSets(t *testing.T) {
	a := profileWith(func(p *domain.UserProfile) {
		p.Challenges = nil
		p.Goals = []string{}
	})
	b := profileWith(func(p *domain.UserProfile) {
		p.ID = "user-b"
		p.Challenges = []string{}
		p.Goals = nil
	})

	got := CompatibilityScore(a, b)
	// Sólo estilo (20), experiencia (15) y edad (10) aportan.
	if got.Score != 45 {
		t.Fatalf("CompatibilityScore = %d; want 45", got.Score)
	}
}

func TestCompatibilityScoreAlwaysInRange(t *testing.T) {
	styles := []domain.CommunicationStyle{domain.StyleGentle, domain.StyleSupportive, domain.StyleDirect, "unknown"}
	levels := []domain.ExperienceLevel{domain.ExperienceBeginner, domain.ExperienceIntermediate, domain.ExperienceExperienced, "unknown"}
	ages := []int{18, 24, 33, 52, 80}

	for _, style := range styles {
		for _, level := range levels {
			for _, age := range ages {
				b := profileWith(func(p *domain.UserProfile) {
					p.ID = "user-b"
					p.CommunicationStyle = style
					p.ExperienceLevel = level
					p.Age = age
					p.Challenges = []string{"grief"}
					p.Goals = nil
				})
				got := CompatibilityScore(profileWith(nil), b)
				if got.Score < 0 || got.Score > 100 {
					t.Fatalf("score %d out of range for style=%s level=%s age=%d", got.Score, style, level, age)
				}
			}
		}
	}
}

func TestCompatibilityScoreDeterministic(t *testing.T) {
	a := profileWith(nil)
	b := profileWith(func(p *domain.UserProfile) {
		p.ID = "user-b"
		p.Challenges = []string{"sleep", "burnout"}
		p.Age = 31
	})

	first := CompatibilityScore(a, b)
	second := CompatibilityScore(a, b)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same inputs produced different results: %+v vs %+v", first, second)
	}
}

func TestIntersectTags(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want []string
	}{
		{
			name: "preserves order of first argument",
			a:    []string{"sleep", "anxiety", "grief"},
			b:    []string{"grief", "anxiety"},
			want: []string{"anxiety", "grief"},
		},
		{
			name: "deduplicates repeated tags",
			a:    []string{"anxiety", "anxiety", "sleep"},
			b:    []string{"anxiety", "sleep"},
			want: []string{"anxiety", "sleep"},
		},
		{
			name: "no overlap",
			a:    []string{"anxiety"},
			b:    []string{"depression"},
			want: nil,
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intersectTags(tt.a, tt.b)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("intersectTags(%v, %v) = %v; want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStyleScore(t *testing.T) {
	tests := []struct {
		name string
		a    domain.CommunicationStyle
		b    domain.CommunicationStyle
		want float64
	}{
		{"gentle-gentle", domain.StyleGentle, domain.StyleGentle, 1.0},
		{"gentle-supportive", domain.StyleGentle, domain.StyleSupportive, 0.9},
		{"gentle-direct", domain.StyleGentle, domain.StyleDirect, 0.6},
		{"supportive-direct", domain.StyleSupportive, domain.StyleDirect, 0.7},
		{"direct-supportive", domain.StyleDirect, domain.StyleSupportive, 0.7},
		{"direct-gentle", domain.StyleDirect, domain.StyleGentle, 0.6},
		{"unknown first", "calm", domain.StyleGentle, 0.5},
		{"unknown second", domain.StyleGentle, "calm", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := styleScore(tt.a, tt.b); got != tt.want {
				t.Fatalf("styleScore(%s, %s) = %v; want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestExperienceScore(t *testing.T) {
	tests := []struct {
		name string
		a    domain.ExperienceLevel
		b    domain.ExperienceLevel
		want float64
	}{
		{"equal", domain.ExperienceBeginner, domain.ExperienceBeginner, 1.0},
		{"one level apart", domain.ExperienceBeginner, domain.ExperienceIntermediate, 0.7},
		{"two levels apart", domain.ExperienceBeginner, domain.ExperienceExperienced, 0.4},
		{"unknown level neutral", "expert", domain.ExperienceBeginner, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := experienceScore(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("experienceScore(%s, %s) = %v; want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAgeScore(t *testing.T) {
	tests := []struct {
		name string
		a    int
		b    int
		want float64
	}{
		{"same age", 30, 30, 1.0},
		{"diff 5 inclusive", 30, 35, 1.0},
		{"diff 6", 30, 36, 0.8},
		{"diff 10 inclusive", 30, 40, 0.8},
		{"diff 11", 30, 41, 0.6},
		{"diff 15 inclusive", 30, 45, 0.6},
		{"diff 16", 30, 46, 0.4},
		{"symmetric", 46, 30, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ageScore(tt.a, tt.b); got != tt.want {
				t.Fatalf("ageScore(%d, %d) = %v; want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
