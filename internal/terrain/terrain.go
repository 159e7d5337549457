package terrain

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"

	"rollcage/internal/config"
)

// Options controls obstacle placement. Obstacles are cones of base radius Radius, tip radius
// Tip and height Height, scattered uniformly over the square [-HalfSize, HalfSize] on X/Z.
// HeightJitter in [0, 1] scales each cone's height by fractal noise sampled at its position;
// 0 keeps every cone the same. Seed == 0 uses a time-based seed.
// Octaves and Frequency control the noise shape.
type Options struct {
	HalfSize  float64
	Count     int
	Radius    float64
	Tip       float64
	Height    float64
	Jitter    float64
	Seed      int64
	Octaves   int
	Frequency float32
}

// OptionsFrom converts the terrain section of a tuning.
func OptionsFrom(t config.Terrain) Options {
	return Options{
		HalfSize:  t.HalfSize,
		Count:     t.Obstacles,
		Radius:    t.ObstacleRadius,
		Tip:       t.ObstacleTip,
		Height:    t.ObstacleHeight,
		Jitter:    t.HeightJitter,
		Seed:      t.Seed,
		Octaves:   t.NoiseOctaves,
		Frequency: float32(t.NoiseFrequency),
	}
}

// Obstacle is one static cone. Position is its center; the base rests on y = 0.
type Obstacle struct {
	Position     mgl64.Vec3
	RadiusTop    float64
	RadiusBottom float64
	Height       float64
}

// Scatter places opts.Count cones. The same non-zero seed always yields the same layout.
func Scatter(opts Options) []Obstacle {
	if opts.Count <= 0 || opts.HalfSize <= 0 {
		return nil
	}
	if opts.Height <= 0 {
		opts.Height = 0.5
	}
	if opts.Radius <= 0 {
		opts.Radius = 1
	}
	if opts.Octaves <= 0 {
		opts.Octaves = 1
	}
	if opts.Frequency <= 0 {
		opts.Frequency = 0.05
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	out := make([]Obstacle, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		x := (rng.Float64()*2 - 1) * opts.HalfSize
		z := (rng.Float64()*2 - 1) * opts.HalfSize
		h := opts.Height
		if opts.Jitter > 0 {
			n := fractalValueNoise2D(float32(x)*opts.Frequency, float32(z)*opts.Frequency, seed, opts.Octaves, 2, 0.5)
			h *= 1 + opts.Jitter*float64(2*n-1)
			// Keep height positive and finite.
			if h < 0.1*opts.Height || h != h {
				h = 0.1 * opts.Height
			}
		}
		out = append(out, Obstacle{
			Position:     mgl64.Vec3{x, h / 2, z},
			RadiusTop:    opts.Tip,
			RadiusBottom: opts.Radius,
			Height:       h,
		})
	}
	return out
}

// fractalValueNoise2D layers smooth value noise over octaves. Output is in [0,1].
func fractalValueNoise2D(x, y float32, seed int64, octaves int, lacunarity, gain float32) float32 {
	var sum, maxAmp float32
	amplitude := float32(1)
	freq := float32(1)

	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*freq, y*freq, int32(seed)+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	n := sum / maxAmp
	if math32.IsNaN(n) || math32.IsInf(n, 0) {
		return 0
	}
	return n
}

// valueNoise2D is smooth value noise in [0,1] over a hashed integer lattice.
func valueNoise2D(x, y float32, seed int32) float32 {
	fx, fy := math32.Floor(x), math32.Floor(y)
	x0, y0 := int32(fx), int32(fy)
	sx := smoothStep(x - fx)
	sy := smoothStep(y - fy)

	ix0 := lerp(hash2D(x0, y0, seed), hash2D(x0+1, y0, seed), sx)
	ix1 := lerp(hash2D(x0, y0+1, seed), hash2D(x0+1, y0+1, seed), sx)
	return lerp(ix0, ix1, sy)
}

// hash2D maps lattice coordinates to a deterministic value in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is cubic easing: 3t^2 - 2t^3.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
