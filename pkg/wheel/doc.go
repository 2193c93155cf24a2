// Package wheel implements a weighted random-selection wheel with an eased,
// deterministic spin animation.
//
// # Overview
//
// An [Engine] owns a fixed list of [Sector]s, one weight per sector and the
// current [SpinState]. A spin is a two-step contract with an external
// animation driver:
//
//	e, _ := wheel.NewDefault(6, wheel.WithSeed(7))
//	idx, started := e.StartSpin()
//	for {
//	    angle, spinning := e.Tick(e.FrameInterval())
//	    draw(angle)
//	    if !spinning {
//	        break
//	    }
//	}
//	// e.CurrentSectorIndex() == idx
//
// # Selection
//
// [Draw] performs inverse-CDF sampling over the weights. After every draw the
// chosen sector's weight is halved and the removed half is spread evenly over
// the other sectors ([Redistribute]), so the total weight never changes and
// recently chosen sectors become less likely without ever reaching zero.
//
// # Animation
//
// The target rest angle is a random point inside the chosen sector. The wheel
// always moves forward and adds 15 to 20 extra turns. Each tick advances by
// MaxPerFrame × progress^Ease, where progress runs from 1 to 0, giving a
// fast-then-slow deceleration. MaxPerFrame is derived from the configured
// duration so every spin lasts about the same time regardless of distance.
// The final tick lands exactly on the target angle, which [SectorIndex] maps
// back to the chosen sector.
//
// The engine is not safe for concurrent use; it is owned by one driver.
package wheel
