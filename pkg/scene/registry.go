package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to NewScene
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type builder func(cameraOverrides ...renderer.CameraConfig) *Scene

type registration struct {
	description string
	build       builder
}

var builtinScenes = map[string]registration{
	"default":      {"Diffuse, hollow glass and gold spheres on a yellow ground", NewDefaultScene},
	"ground":       {"A single diffuse ground sphere seen from straight above", NewGroundScene},
	"defocus":      {"Receding spheres with a thin-lens depth of field", NewDefocusScene},
	"hollow-glass": {"Nested glass and water shells over colored spheres", NewHollowGlassScene},
	"spheregrid":   {"A 10x10 grid of colored metal and glass spheres", NewSphereGridScene},
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for id, reg := range builtinScenes {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: reg.description,
		})
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewScene builds the named scene. Names are case-insensitive.
func NewScene(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	reg, ok := builtinScenes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return reg.build(cameraOverrides...), nil
}

// titleCase converts kebab-case or snake_case to Title Case
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
