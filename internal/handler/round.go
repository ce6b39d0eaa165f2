package handler

import (
	"bytes"
	"errors"
	"golf-coach/internal/middleware"
	"golf-coach/internal/model"
	"golf-coach/internal/service"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type RoundHandler struct {
	svc         *service.RoundService
	screenshots *service.ScreenshotService
	uploadDir   string
	maxUpload   int64
}

func NewRoundHandler(svc *service.RoundService, screenshots *service.ScreenshotService, uploadDir string, maxUpload int64) *RoundHandler {
	return &RoundHandler{svc: svc, screenshots: screenshots, uploadDir: uploadDir, maxUpload: maxUpload}
}

// GET /api/rounds
func (h *RoundHandler) List(c *gin.Context) {
	rounds, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, roundViews(rounds))
}

// GET /api/rounds/:id
func (h *RoundHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	r, err := h.svc.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, roundView(*r))
}

// POST /api/rounds
func (h *RoundHandler) Create(c *gin.Context) {
	var req model.CreateRoundRequest
	if !bind(c, &req) {
		return
	}
	r, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, roundView(*r))
}

// GET /api/rounds/export
func (h *RoundHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.Export(c.Request.Context(), middleware.UserID(c), &buf); err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="rounds.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// POST /api/rounds/screenshot  multipart field "screenshot"
//
// The upload is size-checked and sniffed before anything touches the disk.
// The response carries whatever could be read off the image; no round is
// created.
func (h *RoundHandler) Screenshot(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+1<<20)
	fh, err := c.FormFile("screenshot")
	if err != nil {
		if tooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no screenshot uploaded", "fields": gin.H{"screenshot": "is required"}})
		return
	}
	if fh.Size > h.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	src, err := fh.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer src.Close()
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		fail(c, err)
		return
	}
	mime := http.DetectContentType(head[:n])
	ext, ok := imageExt[mime]
	if !ok {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "only JPEG and PNG images are accepted"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		fail(c, err)
		return
	}
	path := filepath.Join(h.uploadDir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(fh, path); err != nil {
		os.Remove(path)
		fail(c, err)
		return
	}

	extracted := h.screenshots.Extract(c.Request.Context(), path, mime)
	c.JSON(http.StatusOK, gin.H{"extracted": extracted})
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}
