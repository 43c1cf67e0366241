package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UploadProvider issues presigned upload URLs.
type UploadProvider interface {
	GetPresignedPutURL(ctx context.Context, userID, fileName string) (putURL string, publicURL string, err error)
}

type presignRequest struct {
	FileName string `json:"fileName" binding:"required"`
}

type presignResponse struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
}

// UploadHandler serves presigned PUT URLs for direct image uploads.
type UploadHandler struct {
	uploads UploadProvider
}

func NewUploadHandler(uploads UploadProvider) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

func (h *UploadHandler) Presign(ctx *gin.Context) {
	var req presignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.FileName) == "" {
		Error(ctx, http.StatusBadRequest, "fileName is required")
		return
	}

	putURL, publicURL, err := h.uploads.GetPresignedPutURL(ctx.Request.Context(), userID(ctx), req.FileName)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to presign upload")
		return
	}

	Success(ctx, http.StatusOK, presignResponse{UploadURL: putURL, PublicURL: publicURL})
}
