package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleHandler serves the vehicle records attached to clients.
type VehicleHandler struct {
	DB *gorm.DB
}

func NewVehicleHandler(db *gorm.DB) *VehicleHandler {
	return &VehicleHandler{DB: db}
}

type vehicleReq struct {
	ClientID string `json:"client_id" binding:"required"`
	Plate    string `json:"plate" binding:"max=16"`
	Make     string `json:"make" binding:"max=64"`
	Model    string `json:"model" binding:"max=64"`
	Year     int    `json:"year"`
	Color    string `json:"color" binding:"max=32"`
}

type vehicleResp struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Plate    string `json:"plate"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Color    string `json:"color"`
}

func toVehicleResp(v *models.Vehicle) vehicleResp {
	return vehicleResp{
		ID:       v.ID,
		ClientID: v.ClientID,
		Plate:    v.Plate,
		Make:     v.Make,
		Model:    v.Model,
		Year:     v.Year,
		Color:    v.Color,
	}
}

func (h *VehicleHandler) validateYear(year int) bool {
	return year == 0 || (year >= 1900 && year <= time.Now().Year()+1)
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req vehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parâmetros inválidos")
		return
	}

	if !h.validateYear(req.Year) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ano do veículo inválido")
		return
	}

	// the client must belong to the same user
	var count int64
	if err := h.DB.Model(&models.Client{}).
		Where("id = ? AND user_id = ?", req.ClientID, user.ID).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}
	if count == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "cliente não encontrado")
		return
	}

	vehicle := models.Vehicle{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		ClientID: req.ClientID,
		Plate:    strings.ToUpper(strings.TrimSpace(req.Plate)),
		Make:     strings.TrimSpace(req.Make),
		Model:    strings.TrimSpace(req.Model),
		Year:     req.Year,
		Color:    strings.TrimSpace(req.Color),
	}

	if err := h.DB.Create(&vehicle).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao salvar, tente novamente")
		return
	}

	util.Success(c, util.Response{
		"vehicle": toVehicleResp(&vehicle),
	})
}

// ListVehicles returns the user's vehicles, optionally for one client.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)
	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	var vehicles []models.Vehicle
	if err := q.Order("created_at DESC").Find(&vehicles).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}

	items := make([]vehicleResp, 0, len(vehicles))
	for i := range vehicles {
		items = append(items, toVehicleResp(&vehicles[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := c.Param("id")

	var req vehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parâmetros inválidos")
		return
	}

	if !h.validateYear(req.Year) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ano do veículo inválido")
		return
	}

	var vehicle models.Vehicle
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&vehicle).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "veículo não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		}
		return
	}

	vehicle.Plate = strings.ToUpper(strings.TrimSpace(req.Plate))
	vehicle.Make = strings.TrimSpace(req.Make)
	vehicle.Model = strings.TrimSpace(req.Model)
	vehicle.Year = req.Year
	vehicle.Color = strings.TrimSpace(req.Color)

	if err := h.DB.Save(&vehicle).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao salvar, tente novamente")
		return
	}

	util.Success(c, util.Response{
		"vehicle": toVehicleResp(&vehicle),
	})
}

func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	id := c.Param("id")

	if err := h.DB.
		Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Vehicle{}).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao excluir")
		return
	}

	util.Success(c, util.Response{
		"message": "veículo excluído",
	})
}
