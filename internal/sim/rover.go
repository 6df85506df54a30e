// Package sim drives a simulated rover on a grid, producing the same
// updates a real rover link would.
package sim

import (
	"math/rand/v2"
	"slices"

	"rovermap/internal/ingest"
)

var directions = []string{"forward", "backward", "left", "right"}

// Rover is a random-walk rover. When it detects a survivor it stops for
// AidSteps updates to deliver aid before moving again.
type Rover struct {
	X, Y      int
	Direction string

	// DetectChance is the probability of finding a survivor after a move.
	DetectChance float64
	AidSteps     int

	survivors [][2]int
	aidLeft   int
	rng       *rand.Rand
}

func NewRover(seed uint64) *Rover {
	return &Rover{
		DetectChance: 0.1,
		AidSteps:     2,
		rng:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Step advances the simulation and returns the combined update to publish.
func (r *Rover) Step() ingest.Update {
	if r.aidLeft > 0 {
		r.aidLeft--
	} else {
		r.move(directions[r.rng.IntN(len(directions))])
		if r.rng.Float64() < r.DetectChance {
			r.detect()
		}
	}
	return r.update()
}

func (r *Rover) move(dir string) {
	switch dir {
	case "forward":
		r.Y++
	case "backward":
		r.Y--
	case "left":
		r.X--
	case "right":
		r.X++
	}
	r.Direction = dir
}

// detect records a survivor at the current cell unless one was already found there.
func (r *Rover) detect() {
	here := [2]int{r.X, r.Y}
	if slices.Contains(r.survivors, here) {
		return
	}
	r.survivors = append(r.survivors, here)
	r.aidLeft = r.AidSteps
}

func (r *Rover) Survivors() int { return len(r.survivors) }

func (r *Rover) update() ingest.Update {
	list := make([][]float64, len(r.survivors))
	for i, s := range r.survivors {
		list[i] = []float64{float64(s[0]), float64(s[1])}
	}
	return ingest.Update{
		Position:  []float64{float64(r.X), float64(r.Y)},
		Direction: r.Direction,
		Survivors: list,
	}
}
