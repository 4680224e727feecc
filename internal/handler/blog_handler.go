package handler

import (
	"net/http"
	"time"

	"github.com/folio/internal/db"
	"github.com/folio/internal/form"
	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

type blogPostRequest struct {
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	Excerpt         string         `json:"excerpt"`
	Content         string         `json:"content"`
	CoverImage      string         `json:"coverImage"`
	Author          string         `json:"author"`
	Tags            form.CommaList `json:"tags"`
	ReadTime        string         `json:"readTime"`
	PublishedAt     string         `json:"publishedAt"`
	Gallery         form.LineList  `json:"gallery"`
	MetaTitle       string         `json:"metaTitle"`
	MetaDescription string         `json:"metaDescription"`
	Keywords        string         `json:"keywords"`
	SortOrder       *int           `json:"sortOrder"`
	IsVisible       *bool          `json:"isVisible"`
}

func (r blogPostRequest) toInput() service.BlogPostInput {
	return service.BlogPostInput{
		Title:           r.Title,
		Slug:            r.Slug,
		Excerpt:         r.Excerpt,
		Content:         r.Content,
		CoverImage:      r.CoverImage,
		Author:          r.Author,
		Tags:            r.Tags,
		ReadTime:        r.ReadTime,
		PublishedAt:     r.PublishedAt,
		Gallery:         r.Gallery,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		Keywords:        form.NormalizeCSV(r.Keywords),
		SortOrder:       r.SortOrder,
		IsVisible:       r.IsVisible,
	}
}

type publishRequest struct {
	Published bool `json:"published"`
}

func blogPostFormPayload(post *db.BlogPost) gin.H {
	publishedAt := ""
	if !post.IsDraft() {
		publishedAt = post.PublishedAt.UTC().Format(time.RFC3339)
	}
	return gin.H{
		"id":              post.ID,
		"title":           post.Title,
		"slug":            post.Slug,
		"excerpt":         post.Excerpt,
		"content":         post.Content,
		"coverImage":      post.CoverImage,
		"author":          post.Author,
		"tags":            form.Join(post.Tags, form.Comma),
		"readTime":        post.ReadTime,
		"publishedAt":     publishedAt,
		"gallery":         form.Join(post.Gallery, form.Newline),
		"metaTitle":       post.MetaTitle,
		"metaDescription": post.MetaDescription,
		"keywords":        post.Keywords,
		"sortOrder":       post.SortOrder,
		"isVisible":       post.IsVisible,
	}
}

// GetBlogPosts 获取全部文章，草稿排在最前
func (a *API) GetBlogPosts(c *gin.Context) {
	posts, err := a.posts.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		response = append(response, gin.H{
			"post":    post,
			"isDraft": post.IsDraft(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"posts": response})
}

// GetBlogPost 获取单篇文章
func (a *API) GetBlogPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	post, err := a.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "isDraft": post.IsDraft()})
}

// GetBlogPostForm 返回编辑表单使用的文本形式
func (a *API) GetBlogPostForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	post, err := a.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": blogPostFormPayload(post)})
}

// CreateBlogPost 创建文章
func (a *API) CreateBlogPost(c *gin.Context) {
	var req blogPostRequest
	if !bindJSON(c, &req, "请填写完整的文章信息") {
		return
	}
	post, err := a.posts.Create(c.Request.Context(), req.toInput())
	respondResult(c, post, err, "文章已创建")
}

// UpdateBlogPost 更新文章
func (a *API) UpdateBlogPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req blogPostRequest
	if !bindJSON(c, &req, "请填写完整的文章信息") {
		return
	}
	post, err := a.posts.Update(c.Request.Context(), id, req.toInput())
	respondResult(c, post, err, "文章已更新")
}

// PublishBlogPost 发布或撤回文章
func (a *API) PublishBlogPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req publishRequest
	if !bindJSON(c, &req, "无效的发布状态") {
		return
	}
	message := "文章已撤回为草稿"
	if req.Published {
		message = "文章已发布"
	}
	post, err := a.posts.SetPublished(c.Request.Context(), id, req.Published)
	respondResult(c, post, err, message)
}

// DeleteBlogPost 删除文章
func (a *API) DeleteBlogPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := a.posts.Delete(c.Request.Context(), id)
	respondResult(c, nil, err, "文章已删除")
}
