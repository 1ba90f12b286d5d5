package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hazaribi/google-drive-clone-backend-secure/services"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

type FileController struct {
	fileService *services.FileService
	maxFileSize int64
}

func NewFileController(fileService *services.FileService, maxFileSize int64) *FileController {
	return &FileController{
		fileService: fileService,
		maxFileSize: maxFileSize,
	}
}

// UploadFile handles POST /files/upload (multipart form: "file" + optional
// "folder_id"). The controller streams the part to the service; the
// service owns the two-phase store-then-insert sequence.
func (fc *FileController) UploadFile(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "No file provided", err.Error())
		return
	}

	if header.Size > fc.maxFileSize {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "File exceeds maximum allowed size", "")
		return
	}

	var folderID *primitive.ObjectID
	if raw := c.PostForm("folder_id"); raw != "" {
		objID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid folder ID format", "")
			return
		}
		folderID = &objID
	}

	content, err := header.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Failed to read uploaded file", "")
		return
	}
	defer content.Close()

	file, err := fc.fileService.UploadFile(c.Request.Context(), caller, services.FileUploadRequest{
		Content:  content,
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		FolderID: folderID,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "File uploaded successfully", file)
}

// ListFiles handles GET /files?folder_id=<id|root>
func (fc *FileController) ListFiles(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	var folderID *primitive.ObjectID
	folderSet := false
	if raw, ok := c.GetQuery("folder_id"); ok {
		folderSet = true
		if raw != "" && raw != "root" {
			objID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				utils.ErrorResponse(c, http.StatusBadRequest, "Invalid folder ID format", "")
				return
			}
			folderID = &objID
		}
	}

	files, err := fc.fileService.ListFiles(c.Request.Context(), caller, folderID, folderSet)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Files retrieved", files)
}

// GetFile handles GET /files/:id
func (fc *FileController) GetFile(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	fileID, ok := parseObjectIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid file ID format", "")
		return
	}

	file, err := fc.fileService.GetFile(c.Request.Context(), fileID, caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "File retrieved", file)
}

// RenameFile handles PATCH /files/:id/rename
func (fc *FileController) RenameFile(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	fileID, ok := parseObjectIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid file ID format", "")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	file, err := fc.fileService.RenameFile(c.Request.Context(), fileID, req.Name, caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "File renamed successfully", file)
}

// DownloadFile handles GET /files/:id/download
func (fc *FileController) DownloadFile(c *gin.Context) {
	fc.signedURL(c, services.URLTypeDownload)
}

// PreviewFile handles GET /files/:id/preview
func (fc *FileController) PreviewFile(c *gin.Context) {
	fc.signedURL(c, services.URLTypePreview)
}

func (fc *FileController) signedURL(c *gin.Context, urlType services.URLType) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	fileID, ok := parseObjectIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid file ID format", "")
		return
	}

	url, err := fc.fileService.DownloadURL(c.Request.Context(), fileID, caller, urlType)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "URL generated", gin.H{"url": url})
}
