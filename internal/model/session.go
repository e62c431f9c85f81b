package model

import (
	"errors"
	"sync"
)

var (
	ErrNoFileSelected = errors.New("no file selected")
	ErrUploadNotIdle  = errors.New("upload job is not idle")
	ErrStaleUploadJob = errors.New("upload job was replaced")
)

// Session 聚合了一个浏览器会话拥有的全部状态：问答历史、语言/模式偏好、
// 上传任务，以及防止重复派发和重复评价的在途标记。
type Session struct {
	Chat        *ChatSession
	Preferences *Preferences

	mu          sync.Mutex
	dispatching bool
	rating      map[string]struct{}
	upload      UploadJob
}

// NewSession 创建一个空会话，上传任务处于 Idle。
func NewSession() *Session {
	return &Session{
		Chat:        NewChatSession(),
		Preferences: NewPreferences(),
		rating:      make(map[string]struct{}),
		upload:      UploadJob{Status: UploadIdle, DepartmentTag: DepartmentNone, Tags: []string{}},
	}
}

// BeginDispatch 标记一次派发开始；已有派发在途时返回 false。
func (s *Session) BeginDispatch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dispatching {
		return false
	}
	s.dispatching = true
	return true
}

// EndDispatch 清除派发在途标记。
func (s *Session) EndDispatch() {
	s.mu.Lock()
	s.dispatching = false
	s.mu.Unlock()
}

// BeginRating 标记某条回答的评价请求在途；重复调用返回 false。
func (s *Session) BeginRating(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.rating[questionID]; busy {
		return false
	}
	s.rating[questionID] = struct{}{}
	return true
}

// EndRating 清除评价在途标记。
func (s *Session) EndRating(questionID string) {
	s.mu.Lock()
	delete(s.rating, questionID)
	s.mu.Unlock()
}

// UploadJob 返回当前上传任务的副本。
func (s *Session) UploadJob() UploadJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upload.Clone()
}

// SelectFile 以新选中的文件替换上传任务，状态重置为 Idle。
func (s *Session) SelectFile(id string, file UploadFile) UploadJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := file
	s.upload = UploadJob{
		ID:            id,
		File:          &f,
		DepartmentTag: ClassifyDepartment(file.ContentType),
		Tags:          []string{},
		Status:        UploadIdle,
	}
	return s.upload.Clone()
}

// BeginUpload 将任务从 Idle 转为 InProgress。
func (s *Session) BeginUpload(collection string, tags []string) (UploadJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upload.File == nil {
		return s.upload.Clone(), ErrNoFileSelected
	}
	if s.upload.Status != UploadIdle {
		return s.upload.Clone(), ErrUploadNotIdle
	}
	s.upload.Collection = collection
	s.upload.Tags = append([]string{}, tags...)
	s.upload.Status = UploadInProgress
	s.upload.FileID = ""
	s.upload.Error = ""
	return s.upload.Clone(), nil
}

// FinishUpload 记录上传结果。任务在途期间被替换或关闭时返回 ErrStaleUploadJob，结果被丢弃。
// 失败时文件仍保持选中。
func (s *Session) FinishUpload(jobID, fileID string, uploadErr error) (UploadJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upload.ID != jobID || s.upload.Status != UploadInProgress {
		return s.upload.Clone(), ErrStaleUploadJob
	}
	if uploadErr != nil {
		s.upload.Status = UploadFailed
		s.upload.Error = uploadErr.Error()
	} else {
		s.upload.Status = UploadSucceeded
		s.upload.FileID = fileID
	}
	return s.upload.Clone(), nil
}

// DismissUpload 关闭上传面板：丢弃文件并回到 Idle。
func (s *Session) DismissUpload() UploadJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upload = UploadJob{Status: UploadIdle, DepartmentTag: DepartmentNone, Tags: []string{}}
	return s.upload.Clone()
}
