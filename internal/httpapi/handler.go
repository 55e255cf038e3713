package httpapi

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ironsheep/photo-color-mcp/internal/imaging"
	"github.com/ironsheep/photo-color-mcp/internal/photo"
)

// FormField is the multipart field that carries the uploaded photo.
const FormField = "photo"

// Handler serves photo uploads.
type Handler struct {
	processor      *photo.Processor
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewHandler builds a Handler. maxUploadBytes bounds the request body.
func NewHandler(processor *photo.Processor, logger *zap.Logger, maxUploadBytes int64) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{processor: processor, logger: logger, maxUploadBytes: maxUploadBytes}
}

// AnalyzeResponse is the body of a successful /analyze call.
type AnalyzeResponse struct {
	*photo.Result
	ImageBase64 string `json:"image_base64"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Welcome returns the greeting text.
func (h *Handler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, photo.Welcome)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Analyze runs the full pipeline on an uploaded photo and returns both texts
// together with the corrected image as base64.
func (h *Handler) Analyze(c *gin.Context) {
	res, ok := h.process(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, AnalyzeResponse{
		Result:      res,
		ImageBase64: base64.StdEncoding.EncodeToString(res.Image),
	})
}

// Correct runs the full pipeline on an uploaded photo and returns the
// corrected image as a download. The diagnostic and recommendation texts
// travel in headers, with newlines escaped as "\n".
func (h *Handler) Correct(c *gin.Context) {
	res, ok := h.process(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Header("X-Photo-Diagnostic", headerText(res.Diagnostic))
	c.Header("X-Photo-Recommendations", headerText(res.Recommendations))
	c.Header("X-Photo-Caption", res.Caption)
	c.Data(http.StatusOK, res.MimeType, res.Image)
}

func (h *Handler) process(c *gin.Context) (*photo.Result, bool) {
	data, httpErr := h.readUpload(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return nil, false
	}

	res, err := h.processor.Process(data)
	if err != nil {
		h.logger.Warn("photo processing failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		if errors.Is(err, imaging.ErrDecode) {
			abortWithError(c, &httpError{http.StatusUnprocessableEntity, "decode_failed", photo.FailureMessage})
			return nil, false
		}
		abortWithError(c, &httpError{http.StatusInternalServerError, "internal_error", photo.FailureMessage})
		return nil, false
	}

	h.logger.Info("photo processed",
		zap.String("request_id", c.GetString("request_id")),
		zap.String("format", res.Format),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Stringer("brightness", res.Classification.Brightness),
		zap.Stringer("saturation", res.Classification.Saturation),
		zap.Stringer("hue_balance", res.Classification.HueBalance))
	return res, true
}

func (h *Handler) readUpload(c *gin.Context) ([]byte, *httpError) {
	if c.Request.ContentLength > h.maxUploadBytes {
		return nil, tooLarge(h.maxUploadBytes)
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile(FormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, tooLarge(h.maxUploadBytes)
		}
		return nil, &httpError{http.StatusBadRequest, "invalid_request", FormField + " file is required"}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, &httpError{http.StatusBadRequest, "invalid_request", "failed to read upload"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &httpError{http.StatusBadRequest, "invalid_request", "failed to read upload"}
	}
	return data, nil
}

type httpError struct {
	Status  int
	Code    string
	Message string
}

func tooLarge(limit int64) *httpError {
	return &httpError{http.StatusRequestEntityTooLarge, "too_large", fmt.Sprintf("upload exceeds %d bytes", limit)}
}

func abortWithError(c *gin.Context, err *httpError) {
	c.AbortWithStatusJSON(err.Status, gin.H{"error": errorBody{Code: err.Code, Message: err.Message}})
}

func headerText(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}
