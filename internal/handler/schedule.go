package handler

import (
	"net/http"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleHandler serves the weekly operating-hours schedule.
type ScheduleHandler struct {
	DB *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{DB: db}
}

type dayReq struct {
	Open  string `json:"open" binding:"max=5"`
	Close string `json:"close" binding:"max=5"`
}

type scheduleReq struct {
	Monday            dayReq `json:"monday"`
	Tuesday           dayReq `json:"tuesday"`
	Wednesday         dayReq `json:"wednesday"`
	Thursday          dayReq `json:"thursday"`
	Friday            dayReq `json:"friday"`
	Saturday          dayReq `json:"saturday"`
	Sunday            dayReq `json:"sunday"`
	LunchBreakMinutes *int   `json:"lunch_break_minutes"`
	CrossMidnight     bool   `json:"cross_midnight"`
}

func scheduleToResp(s *models.BusinessHours) util.Response {
	day := func(open, close string) gin.H {
		return gin.H{"open": open, "close": close}
	}
	return util.Response{
		"schedule": gin.H{
			"monday":              day(s.MondayOpen, s.MondayClose),
			"tuesday":             day(s.TuesdayOpen, s.TuesdayClose),
			"wednesday":           day(s.WednesdayOpen, s.WednesdayClose),
			"thursday":            day(s.ThursdayOpen, s.ThursdayClose),
			"friday":              day(s.FridayOpen, s.FridayClose),
			"saturday":            day(s.SaturdayOpen, s.SaturdayClose),
			"sunday":              day(s.SundayOpen, s.SundayClose),
			"lunch_break_minutes": s.LunchBreakMinutes,
			"cross_midnight":      s.CrossMidnight,
		},
	}
}

// GetSchedule returns the user's schedule; a user who never saved one gets
// an all-closed default.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var schedule models.BusinessHours
	err := h.DB.Where("user_id = ?", user.ID).First(&schedule).Error
	if err == gorm.ErrRecordNotFound {
		schedule = models.BusinessHours{UserID: user.ID, LunchBreakMinutes: 60}
	} else if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}

	util.Success(c, scheduleToResp(&schedule))
}

// SaveSchedule upserts the single schedule row for the user.
func (h *ScheduleHandler) SaveSchedule(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req scheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "parâmetros inválidos")
		return
	}

	days := []dayReq{req.Monday, req.Tuesday, req.Wednesday, req.Thursday, req.Friday, req.Saturday, req.Sunday}
	for _, d := range days {
		if util.ValidateClock(d.Open) != nil || util.ValidateClock(d.Close) != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "horário inválido, use HH:MM")
			return
		}
	}

	lunch := 60
	if req.LunchBreakMinutes != nil {
		lunch = *req.LunchBreakMinutes
	}
	if lunch < 0 || lunch > 8*60 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "pausa de almoço inválida")
		return
	}

	var schedule models.BusinessHours
	err := h.DB.Where("user_id = ?", user.ID).First(&schedule).Error
	if err == gorm.ErrRecordNotFound {
		schedule = models.BusinessHours{ID: uuid.NewString(), UserID: user.ID}
	} else if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha na consulta")
		return
	}

	schedule.MondayOpen, schedule.MondayClose = req.Monday.Open, req.Monday.Close
	schedule.TuesdayOpen, schedule.TuesdayClose = req.Tuesday.Open, req.Tuesday.Close
	schedule.WednesdayOpen, schedule.WednesdayClose = req.Wednesday.Open, req.Wednesday.Close
	schedule.ThursdayOpen, schedule.ThursdayClose = req.Thursday.Open, req.Thursday.Close
	schedule.FridayOpen, schedule.FridayClose = req.Friday.Open, req.Friday.Close
	schedule.SaturdayOpen, schedule.SaturdayClose = req.Saturday.Open, req.Saturday.Close
	schedule.SundayOpen, schedule.SundayClose = req.Sunday.Open, req.Sunday.Close
	schedule.LunchBreakMinutes = lunch
	schedule.CrossMidnight = req.CrossMidnight

	if err := h.DB.Save(&schedule).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "falha ao salvar, tente novamente")
		return
	}

	util.Success(c, scheduleToResp(&schedule))
}
