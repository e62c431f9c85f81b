package handler

import (
	"ta-chat-go/internal/middleware"
	"ta-chat-go/internal/service"
	"ta-chat-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// Dependencies 汇总路由所需的服务。
type Dependencies struct {
	IdentityParser    *token.IdentityParser
	SessionService    service.SessionService
	ChatService       service.ChatService
	FeedbackService   service.FeedbackService
	PreferenceService service.PreferenceService
	UploadService     service.UploadService
	DocumentService   service.DocumentService
	MaxUploadBytes    int64
}

// NewRouter 创建路由引擎并注册全部路由。
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())
	if deps.MaxUploadBytes > 0 {
		// multipart 解析时超出部分写入临时文件
		r.MaxMultipartMemory = deps.MaxUploadBytes
	}

	sessionHandler := NewSessionHandler(deps.SessionService)
	chatHandler := NewChatHandler(deps.ChatService, deps.FeedbackService, deps.SessionService)
	feedbackHandler := NewFeedbackHandler(deps.FeedbackService)
	preferenceHandler := NewPreferenceHandler(deps.PreferenceService)
	uploadHandler := NewUploadHandler(deps.UploadService)
	documentHandler := NewDocumentHandler(deps.DocumentService)

	auth := middleware.AuthMiddleware(deps.IdentityParser)

	apiV1 := r.Group("/api/v1")
	apiV1.Use(auth)
	{
		apiV1.GET("/labels", preferenceHandler.Labels)

		sessions := apiV1.Group("/sessions")
		{
			sessions.POST("", sessionHandler.Start)
			sessions.GET("/:id", sessionHandler.Get)
			sessions.DELETE("/:id", sessionHandler.End)
			sessions.POST("/:id/questions", chatHandler.Ask)
			sessions.PATCH("/:id/turns/:qid/rating", feedbackHandler.Rate)
			sessions.GET("/:id/preferences", preferenceHandler.Get)
			sessions.PUT("/:id/preferences", preferenceHandler.Update)
			sessions.GET("/:id/upload", uploadHandler.Status)

			// 上传仅对管理员开放
			admin := sessions.Group("/:id/upload")
			admin.Use(middleware.AdminAuthMiddleware())
			{
				admin.POST("", uploadHandler.Select)
				admin.POST("/submit", uploadHandler.Submit)
				admin.DELETE("", uploadHandler.Dismiss)
			}
		}

		apiV1.GET("/upload/supported-types", uploadHandler.GetSupportedFileTypes)

		documents := apiV1.Group("/documents")
		{
			documents.GET("/:department", documentHandler.List)
			documents.GET("/file/:fileId", documentHandler.Open)
		}
	}

	r.GET("/chat/:id", auth, chatHandler.Handle)
	return r
}
