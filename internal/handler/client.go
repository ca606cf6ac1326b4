package handler

import (
	"net/http"
	"strings"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientHandler serves the customer records.
type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{DB: db}
}

type clientReq struct {
	Name  string `json:"name" binding:"required,max=128"`
	Phone string `json:"phone" binding:"max=32"`
	Email string `json:"email" binding:"omitempty,email,max=128"`
	Notes string `json:"notes" binding:"max=2000"`
}

type clientResp struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

func toClientResp(cl *models.Client) clientResp {
	return clientResp{
		ID:    cl.ID,
		Name:  cl.Name,
		Phone: cl.Phone,
		Email: cl.Email,
		Notes: cl.Notes,
	}
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req clientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parâmetros inválidos")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "informe o nome do cliente")
		return
	}

	client := models.Client{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Name:   req.Name,
		Phone:  strings.TrimSpace(req.Phone),
		Email:  strings.TrimSpace(req.Email),
		Notes:  req.Notes,
	}

	if err := h.DB.Create(&client).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao salvar, tente novamente")
		return
	}

	util.Success(c, util.Response{
		"client": toClientResp(&client),
	})
}

// ListClients returns the user's clients, optionally filtered by a
// case-insensitive name/phone search.
func (h *ClientHandler) ListClients(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, "%"+search+"%")
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}

	items := make([]clientResp, 0, len(clients))
	for i := range clients {
		items = append(items, toClientResp(&clients[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := c.Param("id")

	var req clientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parâmetros inválidos")
		return
	}

	var client models.Client
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&client).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "cliente não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		}
		return
	}

	client.Name = strings.TrimSpace(req.Name)
	client.Phone = strings.TrimSpace(req.Phone)
	client.Email = strings.TrimSpace(req.Email)
	client.Notes = req.Notes

	if err := h.DB.Save(&client).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao salvar, tente novamente")
		return
	}

	util.Success(c, util.Response{
		"client": toClientResp(&client),
	})
}

// DeleteClient removes a client and, via FK cascade, its vehicles.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := c.Param("id")

	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Client{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao excluir")
		return
	}
	// vehicles carry the same user_id: remove them explicitly as well so
	// the behavior does not depend on SQLite foreign_keys being on
	if err := h.DB.
		Where("client_id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Vehicle{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao excluir veículos do cliente")
		return
	}

	util.Success(c, util.Response{
		"message": "cliente excluído",
	})
}
