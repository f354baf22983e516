package v1

import (
	"errors"
	"gateway/api/internal/domain"
	"gateway/api/internal/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func (h *Handler) userCreate(c *gin.Context) {
	var data struct {
		Name     string `json:"name" validate:"required,min=1,max=64"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}

	errid := logger.GenErrorId()

	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, errid)
		h.log.Debug("bind json error: " + err.Error())
		return
	}

	v := validator.New()

	if err := v.Struct(data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, errid)
		return
	}

	user, err := h.services.Users.Create(data.Name, data.Email, data.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			responseErr(c, http.StatusConflict, domain.ErrMsgEmailExists, "")
			return
		}
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.Error("user create error: "+err.Error(), "error_id", errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseUserCreated{
		Error:  false,
		UserID: user.UserID,
	})
}

// POST /{version}/user/info
func (h *Handler) userInfo(c *gin.Context) {
	var data struct {
		UserID string `json:"user_id"`
	}

	errid := logger.GenErrorId()

	if err := c.ShouldBindJSON(&data); err != nil || data.UserID == "" {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	user, err := h.services.Users.FindByUserID(data.UserID)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, gin.H{
		"error": false,
		"user":  gin.H{"user_id": user.UserID, "name": user.Name, "email": user.Email},
	})
}

// POST /{version}/user/list
func (h *Handler) userList(c *gin.Context) {
	errid := logger.GenErrorId()

	users, err := h.services.Users.List()
	if err != nil {
		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		h.log.Error("user list error: "+err.Error(), "error_id", errid)
		return
	}

	resp := []gin.H{}
	for _, user := range users {
		resp = append(resp, gin.H{"user_id": user.UserID, "name": user.Name, "email": user.Email})
	}

	c.AbortWithStatusJSON(http.StatusOK, gin.H{"error": false, "users": resp})
}

func (h *Handler) initUserRoutes(g *gin.RouterGroup) {
	g.POST("/user/create", h.adminAccessMiddleware(), h.userCreate)
	g.POST("/user/info", h.adminAccessMiddleware(), h.userInfo)
	g.POST("/user/list", h.adminAccessMiddleware(), h.userList)
}
