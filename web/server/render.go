package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// RenderResult is the final image sent via SSE
type RenderResult struct {
	Scene     string `json:"scene"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TotalSamples     int     `json:"totalSamples"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	MaxDepth         int     `json:"maxDepth"`
	Tiles            int     `json:"tiles"`
	Workers          int     `json:"workers"`
	AverageLuminance float64 `json:"averageLuminance"`
}

type renderOutcome struct {
	img   *image.RGBA
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene and streams console output, then the
// finished image, as Server-Sent Events
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	sceneObj, err := parseSceneParams(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	config := renderer.DefaultRenderConfig()
	if seed := r.URL.Query().Get("seed"); seed != "" {
		if config.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid request: invalid seed: "+seed)
			return
		}
	}

	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	raytracer, err := renderer.NewRaytracer(sceneObj, integrator.NewWhittedIntegrator(), config, NewWebLogger(renderID, consoleChan))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	setSSEHeaders(w)
	ctx := r.Context()
	startTime := time.Now()

	done := make(chan renderOutcome, 1)
	go func() {
		img, stats, err := raytracer.Render(ctx)
		done <- renderOutcome{img: img, stats: stats, err: err}
	}()

	// This goroutine is the only writer to w
	for {
		select {
		case msg := <-consoleChan:
			sendSSEJSON(w, flusher, "console", msg)

		case outcome := <-done:
			drainConsole(w, flusher, consoleChan)
			if outcome.err != nil {
				sendSSEEvent(w, flusher, "error", fmt.Sprintf("Render error: %v", outcome.err))
				return
			}

			imageData, err := imageToBase64PNG(outcome.img)
			if err != nil {
				sendSSEEvent(w, flusher, "error", fmt.Sprintf("failed to encode image: %v", err))
				return
			}

			sampling := sceneObj.SamplingConfig
			sendSSEJSON(w, flusher, "image", RenderResult{
				Scene:     sceneObj.Name,
				ImageData: imageData,
				Stats: Stats{
					Width:            sampling.Width,
					Height:           sampling.Height,
					TotalSamples:     outcome.stats.TotalSamples,
					SamplesPerPixel:  outcome.stats.SamplesPerPixel,
					MaxDepth:         sampling.MaxDepth,
					Tiles:            outcome.stats.TotalTiles,
					Workers:          outcome.stats.NumWorkers,
					AverageLuminance: renderer.CalculateAverageLuminance(outcome.img),
				},
				ElapsedMs: time.Since(startTime).Milliseconds(),
			})
			sendSSEEvent(w, flusher, "complete", "Rendering completed")
			return
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// drainConsole forwards console messages still buffered after the render finished
func drainConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			sendSSEJSON(w, flusher, "console", msg)
		default:
			return
		}
	}
}

// sendSSEJSON sends v as the JSON data of an SSE event
func sendSSEJSON(w http.ResponseWriter, flusher http.Flusher, event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		sendSSEEvent(w, flusher, "error", err.Error())
		return
	}
	sendSSEEvent(w, flusher, event, string(data))
}

// sendSSEEvent sends a generic SSE event
func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
