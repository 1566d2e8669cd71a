package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene or file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

type builtinScene struct {
	info   SceneInfo
	create func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "cornell",
			DisplayName: "Cornell Box",
			Description: "Cornell box with diffuse, reflective and glass spheres",
			Type:        "builtin",
		},
		create: NewCornellScene,
	},
	{
		info: SceneInfo{
			ID:          "spheres",
			DisplayName: "Three Spheres",
			Description: "Green, blue and red diffuse spheres on a white floor",
			Type:        "builtin",
		},
		create: NewSpheresScene,
	},
	{
		info: SceneInfo{
			ID:          "sphere",
			DisplayName: "Single Sphere",
			Description: "One matte green sphere against a black background",
			Type:        "builtin",
		},
		create: NewSingleSphereScene,
	},
}

// ScenesDir is searched for <name>.json when a name is not built in
var ScenesDir = "scenes"

// ListBuiltinScenes returns the scenes compiled into the renderer
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		infos = append(infos, b.info)
	}
	return infos
}

// ListSceneFiles scans dir for JSON scene descriptions.
// A missing directory yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, path := range files {
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: id,
			Type:        "file",
			FilePath:    path,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the files in ScenesDir
func ListAllScenes() ([]SceneInfo, error) {
	files, err := ListSceneFiles(ScenesDir)
	if err != nil {
		return nil, err
	}
	return append(ListBuiltinScenes(), files...), nil
}

// Create returns a scene by built-in name, by path to a .json file, or by
// the name of a file in ScenesDir
func Create(name string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownScene)
	}

	if strings.HasSuffix(name, ".json") {
		return LoadFile(name)
	}

	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.create(), nil
		}
	}

	path := filepath.Join(ScenesDir, name+".json")
	if _, err := os.Stat(path); err == nil {
		return LoadFile(path)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}
