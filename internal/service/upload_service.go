package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"ta-chat-go/internal/model"
	"ta-chat-go/pkg/backend"
	"ta-chat-go/pkg/log"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// UploadService 接口定义了文档上传相关的业务操作。
type UploadService interface {
	Select(sessionID, fileName, contentType string, data []byte) (model.UploadJob, error)
	Submit(ctx context.Context, sessionID, collection string, tags []string, identity model.Identity) (model.UploadJob, error)
	Dismiss(sessionID string) (model.UploadJob, error)
	Status(sessionID string) (model.UploadJob, error)
	SupportedTypes() map[string]interface{}
}

type uploadService struct {
	sessions          SessionService
	client            backend.Client
	defaultCollection string
	maxBytes          int64
}

// NewUploadService 创建一个新的 UploadService 实例。maxBytes 为 0 表示不限制大小。
func NewUploadService(sessions SessionService, client backend.Client, defaultCollection string, maxBytes int64) UploadService {
	if defaultCollection == "" {
		defaultCollection = "default"
	}
	return &uploadService{
		sessions:          sessions,
		client:            client,
		defaultCollection: defaultCollection,
		maxBytes:          maxBytes,
	}
}

// Select 选中一个文件，替换当前上传任务并按声明的 Content-Type 分类。
// 未声明类型时按扩展名或文件内容推断的类型只用于 multipart 分段，不参与分类。
func (s *uploadService) Select(sessionID, fileName, contentType string, data []byte) (model.UploadJob, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return model.UploadJob{}, err
	}
	if len(data) == 0 {
		return session.UploadJob(), ErrEmptyFile
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return session.UploadJob(), fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, len(data), s.maxBytes)
	}

	file := model.UploadFile{
		Name:        filepath.Base(fileName),
		ContentType: contentType,
		PartType:    resolvePartType(fileName, contentType, data),
		Size:        len(data),
		Data:        data,
	}
	job := session.SelectFile(uuid.NewString(), file)
	log.Infow("[UploadService] 已选择文件",
		"chat_id", session.Chat.ID(),
		"job_id", job.ID,
		"file_name", file.Name,
		"content_type", file.ContentType,
		"part_type", file.PartType,
		"department", job.DepartmentTag,
	)
	return job, nil
}

// Submit 将选中的文件提交给后端入库。只有 Idle 状态且已选中文件时才能提交；
// 后端拒绝时任务转为 Failed，文件保持选中。
func (s *uploadService) Submit(ctx context.Context, sessionID, collection string, tags []string, identity model.Identity) (model.UploadJob, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return model.UploadJob{}, err
	}
	if collection = strings.TrimSpace(collection); collection == "" {
		collection = s.defaultCollection
	}

	job, err := session.BeginUpload(collection, cleanTags(tags))
	if err != nil {
		return job, err
	}

	resp, uploadErr := s.client.Upload(backend.WithBearer(ctx, identity.Token), backend.UploadRequest{
		FileName:    job.File.Name,
		ContentType: job.File.PartType,
		Data:        job.File.Data,
		Department:  string(job.DepartmentTag),
		Collection:  job.Collection,
		Tags:        job.Tags,
	})
	fileID := ""
	if uploadErr == nil {
		fileID = resp.FileID
	}

	finished, err := session.FinishUpload(job.ID, fileID, uploadErr)
	if errors.Is(err, model.ErrStaleUploadJob) {
		log.Warnw("[UploadService] 上传任务已被替换，丢弃结果", "job_id", job.ID, "upload_error", uploadErr)
		return finished, err
	}
	if uploadErr != nil {
		log.Errorw("[UploadService] 上传失败", "job_id", job.ID, "file_name", job.File.Name, "error", uploadErr)
		return finished, fmt.Errorf("%w: %v", ErrUploadFailed, uploadErr)
	}
	log.Infow("[UploadService] 上传成功", "job_id", job.ID, "file_id", fileID, "department", job.DepartmentTag)
	return finished, nil
}

// Dismiss 关闭上传面板。
func (s *uploadService) Dismiss(sessionID string) (model.UploadJob, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return model.UploadJob{}, err
	}
	return session.DismissUpload(), nil
}

// Status 返回当前上传任务。
func (s *uploadService) Status(sessionID string) (model.UploadJob, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return model.UploadJob{}, err
	}
	return session.UploadJob(), nil
}

// SupportedTypes 返回可识别分类的文件类型。其它类型仍可提交，分类为 none。
func (s *uploadService) SupportedTypes() map[string]interface{} {
	return map[string]interface{}{
		"supportedTypes": map[string]model.DepartmentTag{
			model.ContentTypeDocx: model.DepartmentDocx,
			model.ContentTypePptx: model.DepartmentPptx,
		},
		"supportedExtensions": []string{".docx", ".pptx"},
		"maxFileBytes":        s.maxBytes,
		"description":         "docx 与 pptx 会被分类入库，其它类型由后端决定是否接收",
	}
}

// 系统 mime 表不一定包含 Office 文档类型
var officeExtensions = map[string]string{
	".docx": model.ContentTypeDocx,
	".pptx": model.ContentTypePptx,
}

func resolvePartType(fileName, declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if byExt, ok := officeExtensions[ext]; ok {
		return byExt
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		return byExt
	}
	detected := mimetype.Detect(data)
	if detected.Is("application/octet-stream") && declared != "" {
		return declared
	}
	return detected.String()
}

func cleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}
