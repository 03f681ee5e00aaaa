package service

import (
	"math"

	"peer-match/internal/domain"
)

// Pesos de los cinco factores; suman exactamente 100.
const (
	weightSharedChallenges   = 30.0
	weightComplementaryGoals = 25.0
	weightCommunicationStyle = 20.0
	weightExperienceLevel    = 15.0
	weightAgeProximity       = 10.0
)

// styleMatrix se evalúa como styleMatrix[a][b]; pares desconocidos valen 0.5.
// Los valores se reproducen tal cual están calibrados en producción.
var styleMatrix = map[domain.CommunicationStyle]map[domain.CommunicationStyle]float64{
	domain.StyleGentle:     {domain.StyleGentle: 1.0, domain.StyleSupportive: 0.9, domain.StyleDirect: 0.6},
	domain.StyleSupportive: {domain.StyleSupportive: 1.0, domain.StyleGentle: 0.9, domain.StyleDirect: 0.7},
	domain.StyleDirect:     {domain.StyleDirect: 1.0, domain.StyleSupportive: 0.7, domain.StyleGentle: 0.6},
}

// CompatibilityResult es la salida del scorer para un par de perfiles.
type CompatibilityResult struct {
	Score              int
	SharedChallenges   []string
	ComplementaryGoals []string
}

// CompatibilityScore calcula la afinidad 0-100 entre dos perfiles.
// Es una función pura: mismo par de perfiles, mismo resultado. El orden de
// los argumentos sólo importa para la consulta a styleMatrix.
func CompatibilityScore(a, b domain.UserProfile) CompatibilityResult {
	sharedChallenges := intersectTags(a.Challenges, b.Challenges)
	complementaryGoals := intersectTags(a.Goals, b.Goals)

	total := weightSharedChallenges*overlapRatio(len(sharedChallenges), a.Challenges, b.Challenges) +
		weightComplementaryGoals*overlapRatio(len(complementaryGoals), a.Goals, b.Goals) +
		weightCommunicationStyle*styleScore(a.CommunicationStyle, b.CommunicationStyle) +
		weightExperienceLevel*experienceScore(a.ExperienceLevel, b.ExperienceLevel) +
		weightAgeProximity*ageScore(a.Age, b.Age)

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return CompatibilityResult{
		Score:              score,
		SharedChallenges:   sharedChallenges,
		ComplementaryGoals: complementaryGoals,
	}
}

// intersectTags devuelve los tags presentes en ambos lados, sin duplicados,
// preservando el orden del primer argumento.
func intersectTags(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, tag := range b {
		inB[tag] = struct{}{}
	}
	seen := make(map[string]struct{}, len(a))
	var common []string
	for _, tag := range a {
		if _, ok := inB[tag]; !ok {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		common = append(common, tag)
	}
	return common
}

func distinctCount(tags []string) int {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return len(set)
}

// overlapRatio normaliza por el lado más grande; max(...,1) evita división
// por cero con conjuntos vacíos.
func overlapRatio(commonCount int, a, b []string) float64 {
	denom := distinctCount(a)
	if n := distinctCount(b); n > denom {
		denom = n
	}
	if denom < 1 {
		denom = 1
	}
	return float64(commonCount) / float64(denom)
}

func styleScore(a, b domain.CommunicationStyle) float64 {
	if row, ok := styleMatrix[a]; ok {
		if value, ok := row[b]; ok {
			return value
		}
	}
	return 0.5
}

// experienceScore penaliza 0.3 por cada nivel de distancia. Un nivel
// desconocido en cualquiera de los lados vale el neutro 0.5.
func experienceScore(a, b domain.ExperienceLevel) float64 {
	rankA, rankB := a.Rank(), b.Rank()
	if rankA == 0 || rankB == 0 {
		return 0.5
	}
	diff := rankA - rankB
	if diff < 0 {
		diff = -diff
	}
	score := 1.0 - 0.3*float64(diff)
	if score < 0 {
		return 0
	}
	return score
}

func ageScore(a, b int) float64 {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= 5:
		return 1.0
	case diff <= 10:
		return 0.8
	case diff <= 15:
		return 0.6
	default:
		return 0.4
	}
}
