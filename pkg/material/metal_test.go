package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_ClampsFuzz(t *testing.T) {
	for input, want := range map[float64]float64{-2: 0, 0: 0, 0.3: 0.3, 1: 1, 7: 1} {
		if got := NewMetal(core.NewVec3(1, 1, 1), input).Fuzzness; got != want {
			t.Errorf("NewMetal(fuzz=%v): expected %v, got %v", input, want, got)
		}
	}
}

func TestMetal_Mirror(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.6, 0.5)
	mirror := NewMetal(albedo, 0)
	hit := HitRecord{Point: core.NewVec3(1, 2, 3), Normal: core.NewVec3(0, 1, 0)}

	tests := []struct {
		name     string
		incoming core.Vec3
		expected core.Vec3
	}{
		{"head on", core.NewVec3(0, -4, 0), core.NewVec3(0, 1, 0)},
		{"forty five degrees", core.NewVec3(1, -1, 0), core.NewVec3(1, 1, 0).Normalize()},
		{"shallow", core.NewVec3(0, -1, 3), core.NewVec3(0, 1, 3).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(hit.Point.Subtract(tt.incoming), tt.incoming)
			result, ok := mirror.Scatter(ray, hit, core.NewSeededSampler(1))
			if !ok {
				t.Fatal("Expected mirror to scatter above the surface")
			}
			if result.Scattered.Origin != hit.Point {
				t.Errorf("Expected scattered ray to start at the hit point, got %v", result.Scattered.Origin)
			}
			if d := result.Scattered.Direction.Subtract(tt.expected).Length(); d > 1e-12 {
				t.Errorf("Expected direction %v, got %v", tt.expected, result.Scattered.Direction)
			}
			if result.Attenuation != albedo {
				t.Errorf("Expected attenuation %v, got %v", albedo, result.Attenuation)
			}
		})
	}
}

func TestMetal_FuzzStaysWithinRadius(t *testing.T) {
	const fuzz = 0.4
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), fuzz)
	sampler := core.NewSeededSampler(42)
	hit := HitRecord{Normal: core.NewVec3(0, 0, 1)}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	perfect := core.NewVec3(0, 0, 1)

	distinct := map[core.Vec3]bool{}
	for i := 0; i < 200; i++ {
		result, ok := metal.Scatter(ray, hit, sampler)
		if !ok {
			t.Fatalf("Head-on ray with fuzz %v can never go below the surface", fuzz)
		}
		offset := result.Scattered.Direction.Subtract(perfect).Length()
		if math.Abs(offset-fuzz) > 1e-9 {
			t.Fatalf("Expected perturbation of length %v, got %v", fuzz, offset)
		}
		distinct[result.Scattered.Direction] = true
	}
	if len(distinct) < 2 {
		t.Error("Expected fuzz to vary the reflected direction")
	}
}

func TestMetal_GrazingFuzzAbsorbs(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1)
	sampler := core.NewSeededSampler(123)
	hit := HitRecord{Normal: core.NewVec3(0, 0, 1)}
	ray := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01))

	absorbed, scattered := 0, 0
	for i := 0; i < 1000; i++ {
		result, ok := metal.Scatter(ray, hit, sampler)
		if !ok {
			absorbed++
			continue
		}
		scattered++
		if result.Scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatalf("Accepted scatter points into the surface: %v", result.Scattered.Direction)
		}
	}
	if absorbed == 0 || scattered == 0 {
		t.Errorf("Expected a mix of absorbed and scattered rays, got %d absorbed and %d scattered", absorbed, scattered)
	}
}
