package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestTimeout 为每个请求的 context 设置超时，服务层查询会随之取消
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// UploadHeaders 让上传目录里的文件只能作为图片使用，不执行脚本也不被改判类型
func UploadHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", "default-src 'none'; img-src 'self' data:; style-src 'unsafe-inline'; sandbox")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}
