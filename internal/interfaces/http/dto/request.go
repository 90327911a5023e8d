package dto

import (
	"github.com/gin-gonic/gin"
)

// IDRequest 资源 ID 请求
type IDRequest struct {
	ID string `uri:"id" binding:"required"`
}

// BindID 从 URI 绑定资源 ID
func BindID(c *gin.Context) string {
	return c.Param("id")
}

// RewriteRequest 改写请求
type RewriteRequest struct {
	Text string `json:"text" binding:"required"`
	Tone string `json:"tone"`
}

// CreateAudiobookRequest 生成有声书请求
type CreateAudiobookRequest struct {
	Text  string `json:"text" binding:"required"`
	Tone  string `json:"tone"`
	Voice string `json:"voice"`
}

// UploadAudiobookForm 上传文档生成有声书的表单字段（文件字段名 file）
type UploadAudiobookForm struct {
	Tone  string `form:"tone"`
	Voice string `form:"voice"`
}
