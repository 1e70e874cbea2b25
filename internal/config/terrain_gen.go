package config

import "sync"

// TerrainGenSettings holds terrain generation configuration shared by the
// executables.
type TerrainGenSettings struct {
	mu        sync.RWMutex
	seed      int64
	exponent  int // grid side is 2^exponent + 1
	roughness float64
}

var globalTerrainGenSettings = &TerrainGenSettings{
	seed:      1,
	exponent:  7, // 129x129 vertices
	roughness: 0.1,
}

// GetSeed returns the generation seed.
func GetSeed() int64 {
	globalTerrainGenSettings.mu.RLock()
	defer globalTerrainGenSettings.mu.RUnlock()
	return globalTerrainGenSettings.seed
}

// SetSeed sets the generation seed.
func SetSeed(seed int64) {
	globalTerrainGenSettings.mu.Lock()
	defer globalTerrainGenSettings.mu.Unlock()
	globalTerrainGenSettings.seed = seed
}

// GetExponent returns the grid size exponent (side 2^n+1).
func GetExponent() int {
	globalTerrainGenSettings.mu.RLock()
	defer globalTerrainGenSettings.mu.RUnlock()
	return globalTerrainGenSettings.exponent
}

// SetExponent sets the grid size exponent, clamped to [2, 12].
func SetExponent(n int) {
	globalTerrainGenSettings.mu.Lock()
	defer globalTerrainGenSettings.mu.Unlock()

	if n < 2 {
		n = 2
	}
	if n > 12 {
		n = 12
	}

	globalTerrainGenSettings.exponent = n
}

// GetRoughness returns the fractal displacement amplitude.
func GetRoughness() float64 {
	globalTerrainGenSettings.mu.RLock()
	defer globalTerrainGenSettings.mu.RUnlock()
	return globalTerrainGenSettings.roughness
}

// SetRoughness sets the fractal displacement amplitude, clamped positive.
func SetRoughness(r float64) {
	globalTerrainGenSettings.mu.Lock()
	defer globalTerrainGenSettings.mu.Unlock()
	if r < 0 {
		r = 0
	}
	globalTerrainGenSettings.roughness = r
}
