package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// Parameter limits shared by render and inspect requests
const (
	minImageSize      = 16
	maxImageSize      = 2000
	maxSamplesPerSide = 16
	maxDepth          = 20
)

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "cornell" // Default scene
	}

	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":          config.Width,
			"height":         config.Height,
			"samplesPerSide": config.SamplesPerSide,
			"maxDepth":       config.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":          map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":         map[string]int{"min": minImageSize, "max": maxImageSize},
			"samplesPerSide": map[string]int{"min": 1, "max": maxSamplesPerSide},
			"maxDepth":       map[string]int{"min": 0, "max": maxDepth},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseSceneParams creates the requested scene and applies the image size
// and quality parameters to its sampling config
func parseSceneParams(values url.Values) (*scene.Scene, error) {
	sceneName := values.Get("scene")
	if sceneName == "" {
		sceneName = "cornell"
	}
	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		return nil, err
	}

	config := sceneObj.SamplingConfig
	if config.Width, err = parseIntParam(values, "width", config.Width, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if config.Height, err = parseIntParam(values, "height", config.Height, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if config.SamplesPerSide, err = parseIntParam(values, "samplesPerSide", config.SamplesPerSide, 1, maxSamplesPerSide); err != nil {
		return nil, err
	}
	if config.MaxDepth, err = parseIntParam(values, "maxDepth", config.MaxDepth, 0, maxDepth); err != nil {
		return nil, err
	}
	sceneObj.SamplingConfig = config

	return sceneObj, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
