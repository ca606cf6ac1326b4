package handler

import (
	"net/http"
	"strings"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UpdateProfileReq updates the shop's display data.
type UpdateProfileReq struct {
	ShopName string `json:"shop_name" binding:"max=128"`
}

// ChangePasswordReq changes the account password.
type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=32"`
}

// UpdateProfile updates the current user's shop name.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			return
		}

		var req UpdateProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parâmetros inválidos")
			return
		}

		req.ShopName = strings.TrimSpace(req.ShopName)

		if err := db.Model(user).Update("shop_name", req.ShopName).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao atualizar")
			return
		}

		user.ShopName = req.ShopName

		util.Success(c, util.Response{
			"user": gin.H{
				"id":        user.ID,
				"username":  user.Username,
				"shop_name": user.ShopName,
			},
		})
	}
}

// ChangePassword changes the current user's password.
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			return
		}

		var req ChangePasswordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parâmetros inválidos")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "senha atual incorreta")
			return
		}

		if !isStrongPassword(req.NewPassword) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "senha deve ter 8-32 caracteres com maiúscula, minúscula e número")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao proteger a senha")
			return
		}

		if err := db.Model(user).Update("password_hash", string(hash)).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao atualizar a senha")
			return
		}

		util.Success(c, util.Response{
			"message": "senha alterada, faça login novamente",
		})
	}
}
