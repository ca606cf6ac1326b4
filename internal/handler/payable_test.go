package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/database"
	"github.com/PrecifixDEV/Precifix-v2.0-sub001/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPayableTest(t *testing.T) (*gorm.DB, *models.User, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	user := &models.User{Username: "oficina", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	h := NewPayableHandler(db)
	r := gin.New()
	r.POST("/pay", func(c *gin.Context) {
		c.Set("currentUser", user)
		h.RegisterPayment(c)
	})
	return db, user, r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterPaymentDatelessCostUsesQueriedMonth(t *testing.T) {
	db, user, r := setupPayableTest(t)

	cost := models.OperationalCost{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Description: "Taxa sem data",
		ValueCents:  10000,
		CostType:    models.CostTypeFixed,
	}
	require.NoError(t, db.Create(&cost).Error)

	// paying the virtual item while browsing January 2024
	w := postJSON(t, r, "/pay",
		`{"id":"virtual-`+cost.ID+`","amount_paid":"100.00","month":1,"year":2024}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var payment models.CostPayment
	require.NoError(t, db.Where("operational_cost_id = ?", cost.ID).First(&payment).Error)

	// due date lands on the month the item was displayed in, not today
	want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	assert.True(t, payment.DueDate.Equal(want), "due date = %s, want %s", payment.DueDate, want)
	assert.Equal(t, models.StatusPaid, payment.Status)
	assert.Equal(t, "Taxa sem data", payment.Description)
}

func TestRegisterPaymentPrefersCostExpenseDate(t *testing.T) {
	db, user, r := setupPayableTest(t)

	expense := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)
	cost := models.OperationalCost{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Description: "Aluguel",
		ValueCents:  150000,
		CostType:    models.CostTypeFixed,
		ExpenseDate: &expense,
	}
	require.NoError(t, db.Create(&cost).Error)

	w := postJSON(t, r, "/pay",
		`{"id":"virtual-`+cost.ID+`","amount_paid":"500.00","month":1,"year":2024}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var payment models.CostPayment
	require.NoError(t, db.Where("operational_cost_id = ?", cost.ID).First(&payment).Error)

	assert.True(t, payment.DueDate.Equal(expense), "due date = %s, want %s", payment.DueDate, expense)
	// 500 of 1500 is a partial payment
	assert.Equal(t, models.StatusPartiallyPaid, payment.Status)
}

func TestRegisterPaymentUpdatesExistingRowInPlace(t *testing.T) {
	db, user, r := setupPayableTest(t)

	half := int64(5000)
	payment := models.CostPayment{
		ID:                  uuid.NewString(),
		UserID:              user.ID,
		Description:         "Energia",
		DueDate:             time.Date(2024, time.February, 10, 0, 0, 0, 0, time.Local),
		AmountOriginalCents: 10000,
		AmountPaidCents:     &half,
		Status:              models.StatusPartiallyPaid,
	}
	require.NoError(t, db.Create(&payment).Error)

	w := postJSON(t, r, "/pay", `{"id":"`+payment.ID+`","amount_paid":"100.00"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.CostPayment
	require.NoError(t, db.First(&got, "id = ?", payment.ID).Error)

	assert.Equal(t, models.StatusPaid, got.Status)
	require.NotNil(t, got.AmountPaidCents)
	assert.Equal(t, int64(10000), *got.AmountPaidCents)

	// still a single row for the obligation
	var count int64
	require.NoError(t, db.Model(&models.CostPayment{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterPaymentRejectsInvalidAmountBeforeWriting(t *testing.T) {
	db, user, r := setupPayableTest(t)

	cost := models.OperationalCost{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Description: "Água",
		ValueCents:  8000,
		CostType:    models.CostTypeVariable,
	}
	require.NoError(t, db.Create(&cost).Error)

	w := postJSON(t, r, "/pay", `{"id":"virtual-`+cost.ID+`","amount_paid":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CostPayment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "no payment row may be written on invalid input")
}
