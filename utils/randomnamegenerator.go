package utils

import (
	"math/rand"

	"github.com/Pallinder/go-randomdata"
)

// RandomNameGenerator hands out unique, repeatable names that fit
// into a fixed width name field of maxLen bytes (terminator excluded).
type RandomNameGenerator map[string]struct{}

func (rng *RandomNameGenerator) RandomName(maxLen int) string {
	if *rng == nil {
		*rng = make(map[string]struct{})
		randomdata.CustomRand(rand.New(rand.NewSource(0)))
	}
	for {
		name := randomdata.SillyName()
		if len(name) > maxLen {
			name = name[:maxLen]
		}
		// avoid duplicate names
		if _, exists := (*rng)[name]; !exists {
			(*rng)[name] = struct{}{}
			return name
		}
	}
}
