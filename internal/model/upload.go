package model

import (
	"mime"
	"strings"
)

// 上传时可识别的文档 Content-Type
const (
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// DepartmentTag 是根据 Content-Type 得到的粗粒度文档分类，用于后端入库路由。
type DepartmentTag string

const (
	DepartmentDocx DepartmentTag = "docx"
	DepartmentPptx DepartmentTag = "pptx"
	DepartmentNone DepartmentTag = "none"
)

// ClassifyDepartment 由声明的 Content-Type 确定分类，忽略 charset 等参数。
// 其它类型一律归为 none，仍会提交，由后端决定是否接收。
func ClassifyDepartment(contentType string) DepartmentTag {
	mediaType := strings.TrimSpace(contentType)
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = parsed
	}
	switch strings.ToLower(mediaType) {
	case ContentTypeDocx:
		return DepartmentDocx
	case ContentTypePptx:
		return DepartmentPptx
	default:
		return DepartmentNone
	}
}

// ParseDepartment 解析文档列表使用的分类，只接受 docx 与 pptx。
func ParseDepartment(raw string) (DepartmentTag, bool) {
	switch DepartmentTag(strings.ToLower(strings.TrimSpace(raw))) {
	case DepartmentDocx:
		return DepartmentDocx, true
	case DepartmentPptx:
		return DepartmentPptx, true
	default:
		return "", false
	}
}

// UploadStatus 是上传任务的状态。
type UploadStatus string

const (
	UploadIdle       UploadStatus = "idle"
	UploadInProgress UploadStatus = "in_progress"
	UploadSucceeded  UploadStatus = "succeeded"
	UploadFailed     UploadStatus = "failed"
)

// UploadFile 是用户选中的文件。
// ContentType 为浏览器声明的类型，只用它分类；PartType 是提交时 multipart 分段使用的类型。
type UploadFile struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	PartType    string `json:"partType"`
	Size        int    `json:"size"`
	Data        []byte `json:"-"`
}

// UploadJob 代表一次文档上传。选择新文件或关闭上传面板时重置为 Idle。
type UploadJob struct {
	ID            string        `json:"id"`
	File          *UploadFile   `json:"file,omitempty"`
	DepartmentTag DepartmentTag `json:"departmentTag"`
	Tags          []string      `json:"tags"`
	Collection    string        `json:"collection,omitempty"`
	Status        UploadStatus  `json:"status"`
	FileID        string        `json:"fileId,omitempty"`
	Error         string        `json:"error,omitempty"`
}

// Clone 返回任务的副本，文件内容共享（只读）。
func (j UploadJob) Clone() UploadJob {
	tags := make([]string, len(j.Tags))
	copy(tags, j.Tags)
	j.Tags = tags
	if j.File != nil {
		f := *j.File
		j.File = &f
	}
	return j
}
