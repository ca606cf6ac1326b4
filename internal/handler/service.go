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

// ServiceHandler serves the service catalog (what the shop sells and for
// how much).
type ServiceHandler struct {
	DB *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{DB: db}
}

type serviceReq struct {
	Name             string `json:"name" binding:"required,max=128"`
	Description      string `json:"description" binding:"max=2000"`
	Price            string `json:"price" binding:"required"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Active           *bool  `json:"active"`
}

type serviceResp struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	PriceCents       int64  `json:"price_cents"`
	Price            string `json:"price"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Active           bool   `json:"active"`
}

func toServiceResp(s *models.Service) serviceResp {
	return serviceResp{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		PriceCents:       s.PriceCents,
		Price:            util.FormatCents(s.PriceCents),
		EstimatedMinutes: s.EstimatedMinutes,
		Active:           s.Active,
	}
}

func (h *ServiceHandler) parseReq(c *gin.Context, req *serviceReq) (priceCents int64, ok bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parâmetros inválidos")
		return 0, false
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "informe o nome do serviço")
		return 0, false
	}

	priceCents, err := util.ParseAmountToCents(req.Price)
	if err != nil || util.ValidateAmountCents(priceCents) != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "informe um preço válido")
		return 0, false
	}

	if req.EstimatedMinutes < 0 || req.EstimatedMinutes > 24*60 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "duração estimada inválida")
		return 0, false
	}

	return priceCents, true
}

func (h *ServiceHandler) CreateService(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req serviceReq
	priceCents, ok := h.parseReq(c, &req)
	if !ok {
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	service := models.Service{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		Name:             req.Name,
		Description:      req.Description,
		PriceCents:       priceCents,
		EstimatedMinutes: req.EstimatedMinutes,
		Active:           active,
	}

	if err := h.DB.Create(&service).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao salvar, tente novamente")
		return
	}

	util.Success(c, util.Response{
		"service": toServiceResp(&service),
	})
}

// ListServices returns the catalog; ?active=true narrows to active entries.
func (h *ServiceHandler) ListServices(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}

	items := make([]serviceResp, 0, len(services))
	for i := range services {
		items = append(items, toServiceResp(&services[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

func (h *ServiceHandler) UpdateService(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := c.Param("id")

	var req serviceReq
	priceCents, ok := h.parseReq(c, &req)
	if !ok {
		return
	}

	var service models.Service
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&service).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "serviço não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		}
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.PriceCents = priceCents
	service.EstimatedMinutes = req.EstimatedMinutes
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.DB.Save(&service).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao salvar, tente novamente")
		return
	}

	util.Success(c, util.Response{
		"service": toServiceResp(&service),
	})
}

func (h *ServiceHandler) DeleteService(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := c.Param("id")

	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Service{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao excluir")
		return
	}

	util.Success(c, util.Response{
		"message": "serviço excluído",
	})
}
