package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/lixenwraith/dicetable/physics"
	"github.com/lixenwraith/dicetable/table"
)

// autoroll runs the full simulation core without a terminal: N seeded
// rolls stepped at a synthetic 60 FPS clock until settled, with the face
// values and settle times printed at the end. Doubles as a soak test for
// the solver and settle tunables.

const frame = time.Second / 60

var (
	rolls     = flag.Int("n", 10, "number of rolls")
	seed      = flag.Int64("seed", 1, "rng seed")
	verbose   = flag.Bool("v", false, "print every roll")
	maxFrames = flag.Int("max-frames", 7200, "per-roll frame budget before giving up")
)

func main() {
	flag.Parse()

	tun := table.DefaultTunables()
	world := physics.NewSolverWorld(tun.Gravity)
	session := table.NewSession(world, tun, rand.New(rand.NewSource(*seed)))

	var sums [13]int
	totalFrames := 0

	for i := 0; i < *rolls; i++ {
		session.Roll()

		frames := 0
		for session.Running() {
			session.Advance(frame)
			frames++
			if frames > *maxFrames {
				fmt.Fprintf(os.Stderr, "roll %d did not settle within %d frames\n", i+1, *maxFrames)
				os.Exit(1)
			}
		}

		faces := session.TopFaces()
		sum := faces[0] + faces[1]
		sums[sum]++
		totalFrames += frames

		if *verbose {
			fmt.Printf("roll %3d: %d + %d = %2d  (%d frames)\n", i+1, faces[0], faces[1], sum, frames)
		}
	}

	fmt.Printf("rolls: %d  avg frames to settle: %.1f\n", *rolls, float64(totalFrames)/float64(*rolls))
	for sum := 2; sum <= 12; sum++ {
		if sums[sum] == 0 {
			continue
		}
		fmt.Printf("%2d: %s (%d)\n", sum, bar(sums[sum]), sums[sum])
	}
}

func bar(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '#'
	}
	return string(b)
}
