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

type AddressHandler struct {
	Svc    *application.AddressService
	Logger *logrus.Logger
}

func NewAddressHandler(svc *application.AddressService, logger *logrus.Logger) *AddressHandler {
	return &AddressHandler{Svc: svc, Logger: logger}
}

type createAddressRequest struct {
	UserID     string `json:"user_id" binding:"required,uuid"`
	Country    string `json:"country" binding:"required,min=1,max=60"`
	City       string `json:"city" binding:"required,min=1,max=60"`
	Street     string `json:"street" binding:"required,min=1,max=120"`
	PostalCode string `json:"postal_code" binding:"omitempty,min=3,max=20"`
}

type updateAddressRequest struct {
	Country    *string `json:"country" binding:"omitempty,min=1,max=60"`
	City       *string `json:"city" binding:"omitempty,min=1,max=60"`
	Street     *string `json:"street" binding:"omitempty,min=1,max=120"`
	PostalCode *string `json:"postal_code" binding:"omitempty,min=3,max=20"`
}

type listAddressesQuery struct {
	UserID     string `form:"user_id" binding:"omitempty,uuid"`
	City       string `form:"city"`
	PostalCode string `form:"postal_code"`
	Limit      int    `form:"limit,default=50" binding:"gte=1,lte=100"`
	Offset     int    `form:"offset,default=0" binding:"gte=0"`
}

func addressLinkHeader(addressID, userID string) string {
	return fmt.Sprintf(`</addresses/%s>; rel="self", </addresses>; rel="collection", </users/%s>; rel="user"`, addressID, userID)
}

func (h *AddressHandler) List(c *gin.Context) {
	var q listAddressesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid query", validation.ToDetails(err))
		return
	}
	addrs, err := h.Svc.List(c.Request.Context(), repository.AddressFilter{
		UserID:     q.UserID,
		City:       q.City,
		PostalCode: q.PostalCode,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toAddressResponses(addrs))
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req createAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), application.CreateAddressInput{
		UserID:     req.UserID,
		Country:    req.Country,
		City:       req.City,
		Street:     req.Street,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.Header("Location", "/addresses/"+a.ID)
	c.JSON(http.StatusCreated, toAddressResponse(a))
}

func (h *AddressHandler) Get(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.Header("Link", addressLinkHeader(a.ID, a.UserID))
	c.JSON(http.StatusOK, toAddressResponse(a))
}

func (h *AddressHandler) Update(c *gin.Context) {
	var req updateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), c.Param("id"), repository.AddressPatch{
		Country:    req.Country,
		City:       req.City,
		Street:     req.Street,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toAddressResponse(a))
}

func (h *AddressHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
