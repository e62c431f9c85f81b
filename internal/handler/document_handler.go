package handler

import (
	"net/http"
	"strings"
	"ta-chat-go/internal/middleware"
	"ta-chat-go/internal/service"

	"github.com/gin-gonic/gin"
)

// DocumentHandler 负责已入库文档的查询与跳转。
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler 创建一个新的 DocumentHandler 实例。
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// List 返回某一分类（docx/pptx）下的文档。
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documentService.List(c.Request.Context(), c.Param("department"), middleware.IdentityFrom(c))
	if err != nil {
		fail(c, err, nil)
		return
	}
	ok(c, docs)
}

// Open 重定向到后端的文档地址，引用与文档列表中的链接都指向这里。
func (h *DocumentHandler) Open(c *gin.Context) {
	fileID := strings.TrimSpace(c.Param("fileId"))
	if fileID == "" {
		badRequest(c, "fileId 不能为空")
		return
	}
	c.Redirect(http.StatusFound, h.documentService.URL(fileID))
}
