package service

import (
	"context"
	"fmt"
	"ta-chat-go/internal/model"
	"ta-chat-go/pkg/backend"
	"ta-chat-go/pkg/log"
)

// DocumentService 接口定义了已入库文档的查询操作。
type DocumentService interface {
	List(ctx context.Context, department string, identity model.Identity) ([]model.DocumentInfo, error)
	URL(fileID string) string
}

type documentService struct {
	client backend.Client
}

// NewDocumentService 创建一个新的 DocumentService 实例。
func NewDocumentService(client backend.Client) DocumentService {
	return &documentService{client: client}
}

// List 返回某一分类下的文档，只接受 docx 与 pptx。
func (s *documentService) List(ctx context.Context, department string, identity model.Identity) ([]model.DocumentInfo, error) {
	tag, ok := model.ParseDepartment(department)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDepartment, department)
	}
	docs, err := s.client.ListDocuments(backend.WithBearer(ctx, identity.Token), string(tag))
	if err != nil {
		log.Errorw("[DocumentService] 获取文档列表失败", "department", tag, "error", err)
		return nil, err
	}
	if docs == nil {
		docs = []model.DocumentInfo{}
	}
	return docs, nil
}

// URL 返回文档的访问地址。
func (s *documentService) URL(fileID string) string {
	return s.client.DocumentURL(fileID)
}
