package models

import (
	"math"
	"strings"
)

const (
	defaultRating = 3.0
	maxRating     = 5.0
	coinsCeiling  = 5000.0
)

// NormalizeGender folds every stored gender encoding into the two-valued enum.
// Boolean true and the string "male" (any case) are male; anything else is female.
func NormalizeGender(value interface{}) Gender {
	switch v := value.(type) {
	case bool:
		if v {
			return GenderMale
		}
	case string:
		if strings.EqualFold(strings.TrimSpace(v), string(GenderMale)) {
			return GenderMale
		}
	case Gender:
		return NormalizeGender(string(v))
	}
	return GenderFemale
}

// NormalizeRating maps a raw rating onto the 0-5 display scale.
//
// Absent ratings default to 3.0. Values already in [1,5] are kept. Values in
// [0,100] are treated as percentages and mapped onto [1,5]. Anything else is
// clamped.
func NormalizeRating(r Rating) float64 {
	if !r.Present {
		return defaultRating
	}
	v := r.Value
	switch {
	case v >= 1 && v <= maxRating:
		return roundTenth(v)
	case v >= 0 && v <= 100:
		return roundTenth(1 + (v/100)*4)
	case v < 0:
		return 0
	default:
		return math.Min(maxRating, roundTenth(v))
	}
}

// RatingPercent is the normalized rating as a share of the maximum, capped at 100.
func RatingPercent(r Rating) float64 {
	return math.Min(NormalizeRating(r)/maxRating*100, 100)
}

// CoinsPercent expresses a coin balance against the 5000 coin ceiling.
func CoinsPercent(coins int) float64 {
	if coins <= 0 {
		return 0
	}
	return math.Min(float64(coins)/coinsCeiling*100, 100)
}

// Initials returns up to two upper-case initials for an avatar placeholder.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "??"
	}
	initials := make([]rune, 0, 2)
	for _, w := range words {
		initials = append(initials, []rune(w)[0])
		if len(initials) == 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
