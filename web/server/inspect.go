package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit          bool
	Intersection geometry.Intersection
	Shape        geometry.Shape // The shape that was hit
}

func vecArray(v core.Vector3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// extractMaterialInfo classifies a material and lists its parameters
func extractMaterialInfo(m material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color":           [3]float64{m.Color.R, m.Color.G, m.Color.B},
		"hex":             fmt.Sprintf("#%02x%02x%02x", toByte(m.Color.R), toByte(m.Color.G), toByte(m.Color.B)),
		"reflectivity":    m.Reflectivity,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
		"diffuseWeight":   m.DiffuseWeight(),
	}

	switch {
	case m.IsTransparent():
		return "transparent", properties
	case m.IsReflective():
		return "reflective", properties
	default:
		return "diffuse", properties
	}
}

func toByte(x float64) int {
	return int(max(0, min(1, x)) * 255)
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecArray(geom.V0), vecArray(geom.V1), vecArray(geom.V2)}
		properties["normal"] = vecArray(geom.Normal())
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

// extractLightInfo reports how each light reaches the hit point
func extractLightInfo(sceneObj *scene.Scene, hit geometry.Intersection) []map[string]interface{} {
	infos := make([]map[string]interface{}, 0, len(sceneObj.Lights))
	for _, light := range sceneObj.Lights {
		ndotL := max(0, min(1, hit.Normal.Dot(light.DirectionFrom(hit.Position))))
		infos = append(infos, map[string]interface{}{
			"position": vecArray(light.Position),
			"distance": light.DistanceFrom(hit.Position),
			"ndotL":    ndotL,
			"visible":  !sceneObj.Occluded(hit.ShadowRay(light.Position)),
		})
	}
	return infos
}

// inspectPixel casts a ray through the centre of pixel (pixelX, pixelY) and
// returns information about the first object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (InspectResult, error) {
	camera, err := sceneObj.NewCamera()
	if err != nil {
		return InspectResult{}, err
	}
	ray := camera.GetRay(float64(pixelX)+0.5, float64(pixelY)+0.5)

	hit, isHit := sceneObj.Intersect(ray)
	if !isHit {
		return InspectResult{Hit: false}, nil
	}

	// The scene query does not report which shape was hit, so find it
	for _, shape := range sceneObj.Shapes {
		if shapeHit, shapeIsHit := shape.Intersect(ray); shapeIsHit && shapeHit.T == hit.T {
			return InspectResult{Hit: true, Intersection: hit, Shape: shape}, nil
		}
	}

	return InspectResult{Hit: true, Intersection: hit}, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	sceneObj, err := parseSceneParams(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	config := sceneObj.SamplingConfig
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	hit := result.Intersection
	materialType, materialProps := extractMaterialInfo(hit.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(hit.Position),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFacing,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
			"lights":   extractLightInfo(sceneObj, hit),
		},
	})
}
