package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/promphitak-p/praweena/internal/notify"
	"github.com/promphitak-p/praweena/internal/storage"
)

// envJS serves the public browser bootstrap config
func (h *handler) envJS(c *gin.Context) {
	payload, err := json.Marshal(map[string]string{
		"SUPABASE_URL":      h.Public.SupabaseURL,
		"SUPABASE_ANON_KEY": h.Public.SupabaseAnonKey,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", []byte("window.__ENV = "+string(payload)+";\n"))
}

// notifyLine forwards a text or a formatted lead to LINE. It answers 200 or
// 500 with a JSON body and never propagates a panic to the caller.
func (h *handler) notifyLine(c *gin.Context) {
	var body notifyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	text := body.Text
	if body.Lead != nil {
		text = notify.FormatLead(body.Lead)
	}
	if h.Pusher == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": notify.ErrNotConfigured.Error()})
		return
	}
	if err := h.Pusher.Push(c.Request.Context(), body.To, text); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// uploadFiles stores the multipart "files" through the signed-URL API
func (h *handler) uploadFiles(c *gin.Context) {
	propertyID, ok := uuidParam(c, "propertyID")
	if !ok {
		return
	}
	if h.Files == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "file storage is not configured"})
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		respondBindError(c, err)
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "no files"})
		return
	}

	files := make([]storage.File, 0, len(headers))
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		opened = append(opened, f)
		files = append(files, storage.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	uploaded, err := h.Files.UploadAll(c.Request.Context(), propertyID, files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, uploaded)
}

func (h *handler) deleteFile(c *gin.Context) {
	if h.Files == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "file storage is not configured"})
		return
	}
	var body deleteFileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}
	target := strings.TrimSpace(body.FileKey)
	if target == "" {
		target = body.FileURL
	}
	if err := h.Files.Delete(c.Request.Context(), target); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
