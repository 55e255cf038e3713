package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/photo-color-mcp/internal/imaging"
	"github.com/ironsheep/photo-color-mcp/internal/photo"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "photo_analyze", "photo_correct").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// Undecodable images additionally carry photo.FailureMessage as the message.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed",
			zap.String("tool", params.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		if errors.Is(err, imaging.ErrDecode) {
			return s.errorResponse(req.ID, -32000, photo.FailureMessage, err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.logger.Debug("tool completed",
		zap.String("tool", params.Name),
		zap.Duration("elapsed", time.Since(start)))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "photo_load":
		return s.handlePhotoLoad(args)
	case "photo_analyze":
		return s.handlePhotoAnalyze(args)
	case "photo_correct":
		return s.handlePhotoCorrect(args)
	case "photo_analyze_batch":
		return s.handlePhotoAnalyzeBatch(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// It returns an empty string on marshal failure.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type pathArgs struct {
	Path string `json:"path"`
}

func (a pathArgs) validate() error {
	if a.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func decodePathArgs(args json.RawMessage) (pathArgs, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return a, err
	}
	return a, a.validate()
}

func (s *Server) handlePhotoLoad(args json.RawMessage) (interface{}, error) {
	a, err := decodePathArgs(args)
	if err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(a.Path)
}

func (s *Server) handlePhotoAnalyze(args json.RawMessage) (interface{}, error) {
	a, err := decodePathArgs(args)
	if err != nil {
		return nil, err
	}
	return s.analyzeFile(a.Path)
}

func (s *Server) analyzeFile(path string) (*photo.Analysis, error) {
	data, err := imaging.ReadFile(path)
	if err != nil {
		return nil, err
	}
	analysis, err := s.processor.Analyze(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Info("photo analyzed",
		zap.String("path", path),
		zap.String("format", analysis.Format),
		zap.Stringer("brightness", analysis.Classification.Brightness),
		zap.Stringer("saturation", analysis.Classification.Saturation),
		zap.Stringer("hue_balance", analysis.Classification.HueBalance))
	return analysis, nil
}

type photoCorrectArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

// correctResult is the photo_correct payload. Exactly one of OutputPath and
// ImageBase64 is set.
type correctResult struct {
	*photo.Result
	OutputPath  string `json:"output_path,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

func (s *Server) handlePhotoCorrect(args json.RawMessage) (interface{}, error) {
	var a photoCorrectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	data, err := imaging.ReadFile(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := s.processor.Process(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Path, err)
	}

	out := &correctResult{Result: res}
	target := a.OutputPath
	if target == "" && s.cfg.OutputDir != "" {
		target = filepath.Join(s.cfg.OutputDir,
			fmt.Sprintf("corrected_%s.%s", uuid.NewString(), imaging.Extension(res.OutputFormat)))
	}

	if target == "" {
		out.ImageBase64 = base64.StdEncoding.EncodeToString(res.Image)
	} else {
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(target, res.Image, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write corrected image: %w", err)
		}
		out.OutputPath = target
	}

	s.logger.Info("photo corrected",
		zap.String("path", a.Path),
		zap.String("output_format", res.OutputFormat),
		zap.String("output_path", out.OutputPath),
		zap.Int("bytes", len(res.Image)))
	return out, nil
}

type photoAnalyzeBatchArgs struct {
	Paths []string `json:"paths"`
}

// BatchItem is one entry of a photo_analyze_batch result.
type BatchItem struct {
	Path     string          `json:"path"`
	Analysis *photo.Analysis `json:"analysis,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// BatchResult lists batch items in input order.
type BatchResult struct {
	Items  []BatchItem `json:"items"`
	Failed int         `json:"failed"`
}

func (s *Server) handlePhotoAnalyzeBatch(args json.RawMessage) (interface{}, error) {
	var a photoAnalyzeBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, errors.New("paths must not be empty")
	}

	items := make([]BatchItem, len(a.Paths))

	limit := s.cfg.BatchConcurrency
	if limit <= 0 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, path := range a.Paths {
		g.Go(func() error {
			items[i].Path = path
			analysis, err := s.analyzeFile(path)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].Analysis = analysis
			return nil
		})
	}
	_ = g.Wait()

	res := &BatchResult{Items: items}
	for _, item := range items {
		if item.Error != "" {
			res.Failed++
		}
	}
	return res, nil
}
