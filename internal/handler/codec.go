package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seiflotfy/huff"
	"github.com/seiflotfy/huff/internal/service"
)

type CodecHandler struct {
	svc     *service.CodecService
	maxBody int64
}

func NewCodecHandler(s *service.CodecService, maxBody int64) *CodecHandler {
	return &CodecHandler{svc: s, maxBody: maxBody}
}

// readBody returns the request body, or writes an error response and
// returns false.
func (h *CodecHandler) readBody(c *gin.Context) ([]byte, bool) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "body exceeds " + strconv.FormatInt(h.maxBody, 10) + " bytes"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return data, true
}

func setStats(c *gin.Context, s huff.Stats) {
	c.Header("X-Huff-Header-Bits", strconv.FormatInt(s.HeaderBits, 10))
	c.Header("X-Huff-Body-Bits", strconv.FormatInt(s.BodyBits, 10))
	c.Header("X-Huff-Symbols", strconv.Itoa(s.Symbols))
}

func (h *CodecHandler) Compress(c *gin.Context) {
	data, ok := h.readBody(c)
	if !ok {
		return
	}
	res, err := h.svc.Compress(data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	setStats(c, res.Stats)
	c.Data(http.StatusOK, "application/octet-stream", res.Data)
}

func (h *CodecHandler) Decompress(c *gin.Context) {
	data, ok := h.readBody(c)
	if !ok {
		return
	}
	res, err := h.svc.Decompress(data)
	if err != nil {
		if kind := errorKind(err); kind != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": kind})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	setStats(c, res.Stats)
	c.Data(http.StatusOK, "application/octet-stream", res.Data)
}

func (h *CodecHandler) Codes(c *gin.Context) {
	data, ok := h.readBody(c)
	if !ok {
		return
	}
	codes, err := h.svc.Codes(data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"codes": codes})
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, huff.ErrBadMagic):
		return "bad_magic"
	case errors.Is(err, huff.ErrCorruptHeader):
		return "corrupt_header"
	case errors.Is(err, huff.ErrTruncatedBody):
		return "truncated_body"
	default:
		return ""
	}
}
