package handler

import (
	"io"
	"ta-chat-go/internal/middleware"
	"ta-chat-go/internal/service"
	"ta-chat-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// UploadHandler 负责处理文档上传相关的 API 请求。
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler 创建一个新的 UploadHandler 实例。
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Select 接收 multipart 字段 file 作为待上传文件，替换当前任务。
func (h *UploadHandler) Select(c *gin.Context) {
	// 1. 从表单中获取文件
	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warnf("SelectFile: 缺少文件字段, error: %v", err)
		badRequest(c, "请求中缺少 file 字段")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("SelectFile: 无法打开上传的文件, error: %v", err)
		badRequest(c, "无法读取上传的文件")
		return
	}
	defer file.Close()

	// 2. 读取文件内容，大小限制由 service 校验
	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("SelectFile: 读取文件内容失败, error: %v", err)
		badRequest(c, "无法读取上传的文件")
		return
	}

	// 3. 分类使用浏览器声明的 Content-Type
	job, err := h.uploadService.Select(c.Param("id"), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		fail(c, err, job)
		return
	}
	ok(c, job)
}

// SubmitRequest 定义了提交上传的请求体。
type SubmitRequest struct {
	Collection string   `json:"collection"`
	Tags       []string `json:"tags"`
}

// Submit 将选中的文件提交给后端。
func (h *UploadHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	// 请求体可省略，此时使用默认知识库且不带标签
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Warnf("SubmitUpload: Invalid request payload, error: %v", err)
			badRequest(c, "无效的请求负载")
			return
		}
	}

	job, err := h.uploadService.Submit(c.Request.Context(), c.Param("id"), req.Collection, req.Tags, middleware.IdentityFrom(c))
	if err != nil {
		fail(c, err, job)
		return
	}
	ok(c, job)
}

// Dismiss 关闭上传面板并丢弃选中的文件。
func (h *UploadHandler) Dismiss(c *gin.Context) {
	job, err := h.uploadService.Dismiss(c.Param("id"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	ok(c, job)
}

// Status 返回当前上传任务。
func (h *UploadHandler) Status(c *gin.Context) {
	job, err := h.uploadService.Status(c.Param("id"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	ok(c, job)
}

// GetSupportedFileTypes 返回可识别分类的文件类型。
func (h *UploadHandler) GetSupportedFileTypes(c *gin.Context) {
	ok(c, h.uploadService.SupportedTypes())
}
