// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"ta-chat-go/internal/config"
	"ta-chat-go/internal/handler"
	"ta-chat-go/internal/repository"
	"ta-chat-go/internal/service"
	"ta-chat-go/pkg/backend"
	"ta-chat-go/pkg/log"
	"ta-chat-go/pkg/token"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(log.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化后端客户端与会话存储
	backendClient := backend.NewClient(cfg.Backend)
	sessionRepo := repository.NewSessionRepository(
		time.Duration(cfg.Session.IdleMinutes)*time.Minute,
		time.Duration(cfg.Session.CleanupMinutes)*time.Minute,
	)
	identityParser := token.NewIdentityParser(cfg.JWT.Secret)
	if !identityParser.Verifies() {
		log.Warnf("未配置 jwt.secret，token 签名将不会被校验，管理员接口不可用")
	}

	// 4. 初始化 Service (依赖注入)
	sessionService := service.NewSessionService(backendClient, sessionRepo)
	chatService := service.NewChatService(sessionService, backendClient, cfg.Backend.DefaultCollection, cfg.Backend.AnonymousUser)
	feedbackService := service.NewFeedbackService(sessionService, backendClient)
	preferenceService := service.NewPreferenceService(sessionService)
	uploadService := service.NewUploadService(sessionService, backendClient, cfg.Backend.DefaultCollection, cfg.Upload.MaxBytes())
	documentService := service.NewDocumentService(backendClient)

	// 5. 设置 Gin 模式并注册路由
	gin.SetMode(cfg.Server.Mode)
	r := handler.NewRouter(handler.Dependencies{
		IdentityParser:    identityParser,
		SessionService:    sessionService,
		ChatService:       chatService,
		FeedbackService:   feedbackService,
		PreferenceService: preferenceService,
		UploadService:     uploadService,
		DocumentService:   documentService,
		MaxUploadBytes:    cfg.Upload.MaxBytes(),
	})

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s, 后端地址: %s", srv.Addr, cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Infof("服务已优雅关闭，关闭时活动会话数: %d", sessionRepo.Count())
}
