// Package service 包含了应用的业务逻辑层。
package service

import (
	"errors"
	"ta-chat-go/internal/model"
)

// ErrSessionUnresolved 表示未能从后端取得会话 ID，不允许派发。
var ErrSessionUnresolved = errors.New("session id unresolved")

// ErrDispatchInFlight 表示同一会话已有一个提问在途。
var ErrDispatchInFlight = errors.New("a question is already being dispatched")

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrEmptyQuestion     = errors.New("question is empty")
	ErrDispatchFailed    = errors.New("dispatch failed")
	ErrRatingInFlight    = errors.New("rating already in flight")
	ErrRatingRejected    = errors.New("rating rejected by backend")
	ErrUnknownDepartment = errors.New("unknown department")
	ErrFileTooLarge      = errors.New("file too large")
	ErrEmptyFile         = errors.New("file is empty")
	ErrUploadFailed      = errors.New("upload failed")
	ErrInvalidPreference = errors.New("invalid preference")
)

var (
	ErrTurnNotFound   = model.ErrTurnNotFound
	ErrAlreadyRated   = model.ErrAlreadyRated
	ErrNoFileSelected = model.ErrNoFileSelected
	ErrUploadNotIdle  = model.ErrUploadNotIdle
	ErrStaleUploadJob = model.ErrStaleUploadJob
)
