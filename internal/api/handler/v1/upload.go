package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusday/orientation-api/internal/api/handler/v1/response"
	"github.com/campusday/orientation-api/internal/pkg/blobstore"
)

type UploadHandler struct {
	store      blobstore.Store
	maxSizeMiB int64
}

func NewUploadHandler(store blobstore.Store, maxSizeMiB int64) *UploadHandler {
	return &UploadHandler{
		store:      store,
		maxSizeMiB: maxSizeMiB,
	}
}

// HandleUpload godoc
// @Summary      Upload a file and get its descriptor
// @Description  Stores the file in the blob store and returns the {url, name, size} descriptor to pass to a file submission. The per-activity limit is still enforced at submit time.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "file"
// @Success      201  {object}  blobstore.Descriptor
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /uploads [post]
// @Security     BearerAuth
func (h *UploadHandler) HandleUpload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("missing file: %w", err)))
		return
	}

	if fileHeader.Size > h.maxSizeMiB<<20 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("file exceeds %d MiB", h.maxSizeMiB)))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		err = fmt.Errorf("v1.HandleUpload -> fileHeader.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	defer f.Close()

	descriptor, err := h.store.Put(ctx.Request.Context(), fileHeader.Filename, f)
	if err != nil {
		err = fmt.Errorf("v1.HandleUpload -> h.store.Put -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, descriptor)
}
