package game

import "math/rand"

// ShuffleWords returns a fresh uniformly random permutation (Fisher-Yates).
// The input is not mutated.
func ShuffleWords(rng *rand.Rand, words []string) []string {
	out := make([]string, len(words))
	copy(out, words)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
