package avatar

import "math/rand/v2"

// Random samples every slot uniformly from its catalog.
// A nil r uses the global source.
func Random(r *rand.Rand) Config {
	var c Config
	for _, s := range Slots() {
		vs := catalog[s]
		c.set(s, vs[intN(r, len(vs))])
	}
	return c
}

func intN(r *rand.Rand, n int) int {
	if r == nil {
		return rand.IntN(n)
	}
	return r.IntN(n)
}
