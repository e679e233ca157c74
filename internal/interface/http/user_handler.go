package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-address-service/internal/application"
	"github.com/oksasatya/user-address-service/internal/domain/repository"
	"github.com/oksasatya/user-address-service/pkg/response"
	"github.com/oksasatya/user-address-service/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Export *application.ExportService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, export *application.ExportService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Export: export, Logger: logger}
}

type createUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,min=3,max=30"`
	Password  string `json:"password" binding:"required,pwd"`
	FullName  string `json:"full_name" binding:"omitempty,min=1,max=50"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
	Phone     string `json:"phone" binding:"omitempty,min=6,max=30"`
}

type updateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=30"`
	FullName  *string `json:"full_name" binding:"omitempty,min=1,max=50"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
	Phone     *string `json:"phone" binding:"omitempty,min=6,max=30"`
}

type listUsersQuery struct {
	Email    string `form:"email"`
	Username string `form:"username"`
	Limit    int    `form:"limit,default=50" binding:"gte=1,lte=100"`
	Offset   int    `form:"offset,default=0" binding:"gte=0"`
}

// userLinkHeader advertises the resource's relations, mirroring the headers
// on the single-resource endpoints.
func userLinkHeader(userID string) string {
	return fmt.Sprintf(`</users/%s>; rel="self", </users>; rel="collection", </addresses?user_id=%s>; rel="addresses"`, userID, userID)
}

func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid query", validation.ToDetails(err))
		return
	}
	users, err := h.Svc.List(c.Request.Context(), repository.UserFilter{
		Email:    q.Email,
		Username: q.Username,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), application.CreateUserInput{
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Phone:     req.Phone,
	})
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.Header("Location", "/users/"+u.ID)
	c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")
	u, etag, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}

	c.Header("ETag", etag)
	c.Header("Link", userLinkHeader(u.ID))
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	patch := repository.UserPatch{
		Username:  req.Username,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
		Phone:     req.Phone,
	}
	u, etag, err := h.Svc.Update(c.Request.Context(), id, patch, c.GetHeader("If-Match"))
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.Header("ETag", etag)
	c.Header("Link", userLinkHeader(u.ID))
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type searchQuery struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size,default=10" binding:"gte=1,lte=50"`
}

func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid query", validation.ToDetails(err))
		return
	}
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": hits})
}

// StartExport accepts the export request and returns immediately with a
// pollable job id; the export itself runs in the background.
func (h *UserHandler) StartExport(c *gin.Context) {
	job, err := h.Export.Enqueue(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.Header("Location", "/jobs/"+job.ID)
	c.JSON(http.StatusAccepted, gin.H{"job_id": job.ID, "status": job.Status})
}
