package handler

import (
	"net/http"

	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	defaultSubmissionLimit = 50
	maxSubmissionLimit     = 500
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContact 处理前台联系表单
func (a *API) SubmitContact(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, &req, "请填写联系表单") {
		return
	}
	submission, err := a.contact.Submit(c.Request.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}, c.ClientIP())
	if err != nil {
		respondResult(c, nil, err, "")
		return
	}
	respondResult(c, gin.H{"id": submission.ID, "submittedAt": submission.SubmittedAt}, nil, "感谢留言，我会尽快回复")
}

// GetContactSubmissions 按提交时间倒序返回留言
func (a *API) GetContactSubmissions(c *gin.Context) {
	limit := queryInt(c, "limit", defaultSubmissionLimit)
	if limit > maxSubmissionLimit {
		limit = maxSubmissionLimit
	}
	submissions, err := a.contact.List(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	total, err := a.contact.Count(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions, "total": total})
}
