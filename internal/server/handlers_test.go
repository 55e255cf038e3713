package server

import (
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/photo-color-mcp/internal/config"
	"github.com/ironsheep/photo-color-mcp/internal/photo"
)

// createTestImageFile creates a uniformly colored PNG in t.TempDir and
// returns its path.
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// darkPhoto is roughly hue 45, saturation 20, value 50 in HSV.
var darkPhoto = color.RGBA{48, 50, 46, 255}

func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()
	paramsJSON, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeContent unmarshals the text payload of a successful tools/call.
func decodeContent(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content should hold one entry, got %v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Fatalf("content type: got %v, want text", content[0]["type"])
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("content is not JSON: %v", err)
	}
}

func TestHandleToolsCall_PhotoLoad(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	decodeContent(t, callTool(t, s, "photo_load", map[string]interface{}{"path": imgPath}), &info)

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
}

func TestHandleToolsCall_PhotoAnalyze(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 20, 20, darkPhoto)

	var analysis photo.Analysis
	decodeContent(t, callTool(t, s, "photo_analyze", map[string]interface{}{"path": imgPath}), &analysis)

	if got := analysis.Classification.Brightness.String(); got != "Low" {
		t.Errorf("brightness: got %s, want Low", got)
	}
	if got := analysis.Classification.Saturation.String(); got != "Low" {
		t.Errorf("saturation: got %s, want Low", got)
	}
	if !strings.Contains(analysis.Diagnostic, "Brightness: Low") {
		t.Errorf("diagnostic missing brightness line: %q", analysis.Diagnostic)
	}
	if !strings.Contains(analysis.Recommendations, "Exposure: +0.3 to +0.7") {
		t.Errorf("recommendations missing exposure line: %q", analysis.Recommendations)
	}
}

func TestHandleToolsCall_PhotoCorrect_OutputPath(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 20, 20, darkPhoto)
	outPath := filepath.Join(t.TempDir(), "nested", "fixed.png")

	var res struct {
		OutputPath  string `json:"output_path"`
		ImageBase64 string `json:"image_base64"`
		Filename    string `json:"filename"`
		Caption     string `json:"caption"`
	}
	decodeContent(t, callTool(t, s, "photo_correct", map[string]interface{}{
		"path":        imgPath,
		"output_path": outPath,
	}), &res)

	if res.OutputPath != outPath {
		t.Errorf("output_path: got %s, want %s", res.OutputPath, outPath)
	}
	if res.ImageBase64 != "" {
		t.Error("image_base64 should be empty when the image is written to disk")
	}
	if res.Filename != "corrected_photo.png" {
		t.Errorf("filename: got %s", res.Filename)
	}
	if res.Caption != photo.Caption {
		t.Errorf("caption: got %s", res.Caption)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("corrected image not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("corrected image is not a PNG: %v", err)
	}
	// Brightness gain lifts the max channel from 50 to about 65.
	_, g, _, _ := img.At(3, 3).RGBA()
	if g>>8 < 63 || g>>8 > 67 {
		t.Errorf("corrected green channel: got %d, want about 65", g>>8)
	}
}

func TestHandleToolsCall_PhotoCorrect_OutputDir(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	s := New(cfg, nil)
	imgPath := createTestImageFile(t, 10, 10, darkPhoto)

	var res struct {
		OutputPath string `json:"output_path"`
	}
	decodeContent(t, callTool(t, s, "photo_correct", map[string]interface{}{"path": imgPath}), &res)

	if filepath.Dir(res.OutputPath) != cfg.OutputDir {
		t.Errorf("output_path %s should be inside %s", res.OutputPath, cfg.OutputDir)
	}
	if !strings.HasPrefix(filepath.Base(res.OutputPath), "corrected_") || filepath.Ext(res.OutputPath) != ".png" {
		t.Errorf("unexpected output name: %s", res.OutputPath)
	}
	if _, err := os.Stat(res.OutputPath); err != nil {
		t.Errorf("corrected image not written: %v", err)
	}
}

func TestHandleToolsCall_PhotoCorrect_Base64(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 10, 10, darkPhoto)

	var res struct {
		OutputPath  string `json:"output_path"`
		ImageBase64 string `json:"image_base64"`
		MimeType    string `json:"mime_type"`
	}
	decodeContent(t, callTool(t, s, "photo_correct", map[string]interface{}{"path": imgPath}), &res)

	if res.OutputPath != "" {
		t.Errorf("output_path should be empty, got %s", res.OutputPath)
	}
	if res.MimeType != "image/png" {
		t.Errorf("mime_type: got %s", res.MimeType)
	}
	data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	if err != nil {
		t.Fatalf("image_base64 is not valid base64: %v", err)
	}
	if _, _, err := image.Decode(strings.NewReader(string(data))); err != nil {
		t.Errorf("image_base64 does not hold an image: %v", err)
	}
}

func TestHandleToolsCall_PhotoAnalyzeBatch(t *testing.T) {
	s := newTestServer(t)
	dark := createTestImageFile(t, 10, 10, darkPhoto)
	bright := createTestImageFile(t, 10, 10, color.RGBA{250, 250, 250, 255})
	broken := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(broken, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	var res BatchResult
	decodeContent(t, callTool(t, s, "photo_analyze_batch", map[string]interface{}{
		"paths": []string{dark, broken, bright},
	}), &res)

	if len(res.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(res.Items))
	}
	if res.Failed != 1 {
		t.Errorf("failed: got %d, want 1", res.Failed)
	}

	if res.Items[0].Path != dark || res.Items[1].Path != broken || res.Items[2].Path != bright {
		t.Errorf("items out of input order: %+v", res.Items)
	}
	if res.Items[0].Analysis == nil || res.Items[0].Analysis.Classification.Brightness.String() != "Low" {
		t.Errorf("dark item: got %+v", res.Items[0])
	}
	if res.Items[1].Error == "" || res.Items[1].Analysis != nil {
		t.Errorf("broken item should carry only an error: %+v", res.Items[1])
	}
	if res.Items[2].Analysis == nil || res.Items[2].Analysis.Classification.Brightness.String() != "High" {
		t.Errorf("bright item: got %+v", res.Items[2])
	}
}

func TestHandleToolsCall_DecodeFailure(t *testing.T) {
	s := newTestServer(t)
	path := filepath.Join(t.TempDir(), "broken.jpg")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp := callTool(t, s, "photo_correct", map[string]interface{}{"path": path})

	if resp.Error == nil {
		t.Fatal("Expected error for undecodable image")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
	if resp.Error.Message != photo.FailureMessage {
		t.Errorf("Error message: got %q, want %q", resp.Error.Message, photo.FailureMessage)
	}
}

func TestHandleToolsCall_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tool    string
		args    interface{}
		message string
	}{
		{"unknown tool", "nonexistent_tool", map[string]interface{}{}, "Tool execution failed"},
		{"missing path", "photo_analyze", map[string]interface{}{}, "Tool execution failed"},
		{"missing file", "photo_load", map[string]interface{}{"path": "/nonexistent/image.png"}, "Tool execution failed"},
		{"empty batch", "photo_analyze_batch", map[string]interface{}{"paths": []string{}}, "Tool execution failed"},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, tt.tool, tt.args)
			if resp.Error == nil {
				t.Fatal("Expected error response")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
			if resp.Error.Message != tt.message {
				t.Errorf("Error message: got %q, want %q", resp.Error.Message, tt.message)
			}
		})
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`{invalid`),
	})

	if resp.Error == nil {
		t.Fatal("Expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := newTestServer(t)

	for _, tool := range []string{"photo_load", "photo_analyze", "photo_correct", "photo_analyze_batch"} {
		if _, err := s.executeTool(tool, json.RawMessage(`{invalid`)); err == nil {
			t.Errorf("executeTool(%s) should fail for invalid JSON", tool)
		}
	}
}
