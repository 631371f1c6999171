package handler

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/school-spotlight/events-api/pkg/errors"
	"github.com/school-spotlight/events-api/pkg/response"
	"github.com/school-spotlight/events-api/pkg/storage"
)

// UploadHandler mints and serves signed download links for event images when
// the local storage driver holds them.
type UploadHandler struct {
	events        eventService
	local         *storage.LocalStorage
	signer        *storage.SignedURLSigner
	publicBaseURL string
}

// NewUploadHandler builds a new handler.
func NewUploadHandler(events eventService, local *storage.LocalStorage, signer *storage.SignedURLSigner, publicBaseURL string) *UploadHandler {
	return &UploadHandler{
		events:        events,
		local:         local,
		signer:        signer,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// SignImageLink godoc
// @Summary Mint a signed image download link
// @Description Return a short-lived signed token for an event's original image
// @Tags Uploads
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/events/{id}/image-link [get]
func (h *UploadHandler) SignImageLink(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if event.ImageURL == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "event has no image"))
		return
	}
	key := strings.TrimPrefix(*event.ImageURL, h.publicBaseURL+"/")
	if key == *event.ImageURL {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "image is not served by this instance"))
		return
	}

	token, expiresAt, err := h.signer.Generate(event.ID, key)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}, nil)
}

// Download godoc
// @Summary Download a signed upload
// @Tags Uploads
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Router /downloads/{token} [get]
func (h *UploadHandler) Download(c *gin.Context) {
	_, key, _, err := h.signer.Parse(c.Param("token"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token"))
		return
	}

	file, err := h.local.Open(key)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat file"))
		return
	}
	http.ServeContent(c.Writer, c.Request, filepath.Base(key), info.ModTime(), file)
}
