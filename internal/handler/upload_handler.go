package handler

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const (
	maxImageWidth   = 1920
	maxInlineBytes  = 256 << 10
	uploadTypeBlog  = "blog"
	uploadTypeProj  = "project"
	uploadTypeOther = "general"
)

var uploadTypes = map[string]bool{
	uploadTypeProj:  true,
	uploadTypeBlog:  true,
	uploadTypeOther: true,
}

const svgContentType = "image/svg+xml"

// 允许落盘的图片类型及保存时使用的扩展名，SVG 只能内联
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var (
	svgActiveMarkers = [][]byte{[]byte("<script"), []byte("javascript:"), []byte("<foreignobject"), []byte("<iframe"), []byte("<embed"), []byte("<object")}
	svgEventAttr     = regexp.MustCompile(`[\s/"']on[a-z]+\s*=`)
)

type uploadedImage struct {
	data        []byte
	contentType string
	width       int
	height      int
}

// UploadImage 处理图片上传：校验类型与大小，读取尺寸，作品与文章配图超宽时等比缩小。
// inline=true 且文件不超过 256KiB 时直接返回 data URI，不落盘。
func (a *API) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, a.uploadMaxBytes+(1<<20))

	file, err := c.FormFile("file")
	if err != nil {
		uploadFailure(c, http.StatusBadRequest, "未找到上传的图片")
		return
	}
	if file.Size > a.uploadMaxBytes {
		uploadFailure(c, http.StatusBadRequest, fmt.Sprintf("图片不能超过 %d KB", a.uploadMaxBytes>>10))
		return
	}

	kind := strings.ToLower(strings.TrimSpace(c.DefaultPostForm("type", uploadTypeOther)))
	if !uploadTypes[kind] {
		uploadFailure(c, http.StatusBadRequest, "type 只能是 project、blog 或 general")
		return
	}

	src, err := file.Open()
	if err != nil {
		uploadFailure(c, http.StatusBadRequest, "读取图片失败")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, a.uploadMaxBytes+1))
	if err != nil {
		uploadFailure(c, http.StatusBadRequest, "读取图片失败")
		return
	}
	if int64(len(data)) > a.uploadMaxBytes {
		uploadFailure(c, http.StatusBadRequest, fmt.Sprintf("图片不能超过 %d KB", a.uploadMaxBytes>>10))
		return
	}

	img, err := inspectImage(data, file.Filename)
	if err != nil {
		uploadFailure(c, http.StatusBadRequest, err.Error())
		return
	}

	inline := c.PostForm("inline") == "true" && len(img.data) <= maxInlineBytes
	if img.contentType == svgContentType && !inline {
		uploadFailure(c, http.StatusBadRequest, fmt.Sprintf("SVG 只能以内联方式上传且不超过 %d KB", maxInlineBytes>>10))
		return
	}

	if inline {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"url":     "data:" + img.contentType + ";base64," + base64.StdEncoding.EncodeToString(img.data),
			"width":   img.width,
			"height":  img.height,
			"inline":  true,
		})
		return
	}

	if (kind == uploadTypeProj || kind == uploadTypeBlog) && img.width > maxImageWidth {
		resized, err := downscale(img)
		if err != nil {
			log.Printf("[upload] downscale %s failed: %v", file.Filename, err)
		} else {
			img = resized
		}
	}

	dir := filepath.Join(a.uploadDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[upload] create dir %s: %v", dir, err)
		uploadFailure(c, http.StatusInternalServerError, "创建上传目录失败")
		return
	}

	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), imageExtensions[img.contentType])
	if err := os.WriteFile(filepath.Join(dir, name), img.data, 0o644); err != nil {
		log.Printf("[upload] write %s: %v", name, err)
		uploadFailure(c, http.StatusInternalServerError, "保存文件失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     path.Join(a.uploadURL, kind, name),
		"width":   img.width,
		"height":  img.height,
	})
}

func uploadFailure(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// inspectImage 按文件内容识别类型；SVG 无法嗅探，按扩展名与根元素判断，并拒绝脚本与事件属性
func inspectImage(data []byte, filename string) (uploadedImage, error) {
	if len(data) == 0 {
		return uploadedImage{}, fmt.Errorf("图片内容为空")
	}

	contentType := http.DetectContentType(data)
	if strings.EqualFold(filepath.Ext(filename), ".svg") {
		lower := bytes.ToLower(data)
		if !bytes.Contains(lower[:min(len(lower), 1024)], []byte("<svg")) {
			return uploadedImage{}, fmt.Errorf("无效的 SVG 文件")
		}
		for _, marker := range svgActiveMarkers {
			if bytes.Contains(lower, marker) {
				return uploadedImage{}, fmt.Errorf("SVG 不能包含脚本或嵌入内容")
			}
		}
		if svgEventAttr.Match(lower) {
			return uploadedImage{}, fmt.Errorf("SVG 不能包含事件属性")
		}
		return uploadedImage{data: data, contentType: svgContentType}, nil
	}

	if _, ok := imageExtensions[contentType]; !ok {
		return uploadedImage{}, fmt.Errorf("只允许上传 PNG、JPEG、GIF、WebP 或 SVG 图片")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return uploadedImage{}, fmt.Errorf("无法读取图片尺寸")
	}
	return uploadedImage{data: data, contentType: contentType, width: cfg.Width, height: cfg.Height}, nil
}

// downscale 等比缩放到 maxImageWidth 宽，WebP 无法编码，转存为 JPEG
func downscale(img uploadedImage) (uploadedImage, error) {
	decoded, err := imaging.Decode(bytes.NewReader(img.data), imaging.AutoOrientation(true))
	if err != nil {
		return img, err
	}
	resized := imaging.Resize(decoded, maxImageWidth, 0, imaging.Lanczos)

	format := imaging.JPEG
	contentType := "image/jpeg"
	switch img.contentType {
	case "image/png":
		format, contentType = imaging.PNG, "image/png"
	case "image/gif":
		format, contentType = imaging.GIF, "image/gif"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return img, err
	}
	bounds := resized.Bounds()
	return uploadedImage{
		data:        buf.Bytes(),
		contentType: contentType,
		width:       bounds.Dx(),
		height:      bounds.Dy(),
	}, nil
}
