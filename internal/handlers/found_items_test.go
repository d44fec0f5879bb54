package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusconnect/lost-and-found-api/internal/database"
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/campusconnect/lost-and-found-api/internal/repository"
	"github.com/campusconnect/lost-and-found-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type foundItemTestEnv struct {
	db      *gorm.DB
	handler *FoundItemHandler
	user    *models.User
	other   *models.User
}

func setupFoundItemTestEnv(t *testing.T) foundItemTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.FoundItem{},
		&models.FoundItemPhoto{},
		&models.Claim{},
		&models.LostItem{},
		&models.LostItemPhoto{},
		&models.Report{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	foundItemRepo := repository.NewFoundItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	reportRepo := repository.NewReportRepository(db)

	resolver := services.NewStatusResolver(claimRepo, reportRepo)
	handler := NewFoundItemHandler(services.NewFoundItemService(foundItemRepo, categoryRepo, resolver))

	user := &models.User{Name: "poster", Email: "poster@example.com", PasswordHash: "x", RollNumber: "R1"}
	other := &models.User{Name: "other", Email: "other@example.com", PasswordHash: "x", RollNumber: "R2"}
	db.Create(user)
	db.Create(other)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	gin.SetMode(gin.TestMode)

	return foundItemTestEnv{db: db, handler: handler, user: user, other: other}
}

func (env foundItemTestEnv) createItemWithClaim(t *testing.T) *models.FoundItem {
	t.Helper()

	category := &models.Category{Name: "Electronics"}
	env.db.Create(category)

	item := &models.FoundItem{
		Name:           "Casio Calculator",
		Description:    "Found after the exam",
		FoundDate:      time.Now(),
		FoundLocation:  "Exam Hall",
		PickupLocation: "Academic Office",
		PostedBy:       env.user.ID,
		CategoryID:     category.ID,
	}
	env.db.Create(item)
	env.db.Create(&models.FoundItemPhoto{FoundItemID: item.ID, PhotoURL: "https://cdn.example.com/p1.jpg"})
	env.db.Create(&models.Claim{FoundItemID: item.ID, ClaimingUserID: env.other.ID, Status: models.ClaimStatusPending})

	return item
}

func authedRequest(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

func TestFoundItemHandler_ReportFoundItem(t *testing.T) {
	env := setupFoundItemTestEnv(t)

	category := &models.Category{Name: "Electronics"}
	env.db.Create(category)

	body, _ := json.Marshal(map[string]interface{}{
		"name":            "Casio Calculator",
		"description":     "Found after the exam",
		"found_date":      time.Now().Format(time.RFC3339),
		"found_location":  "Exam Hall",
		"pickup_location": "Academic Office",
		"category_id":     category.ID,
		"photos":          []string{"https://cdn.example.com/p1.jpg", "https://cdn.example.com/p2.jpg"},
	})
	c, w := authedRequest("POST", "/api/found-items/report", body, env.user.ID)

	env.handler.ReportFoundItem(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var photoCount int64
	env.db.Model(&models.FoundItemPhoto{}).Count(&photoCount)
	require.Equal(t, int64(2), photoCount)
}

func TestFoundItemHandler_ReportFoundItem_NoPhotos(t *testing.T) {
	env := setupFoundItemTestEnv(t)

	category := &models.Category{Name: "Electronics"}
	env.db.Create(category)

	body, _ := json.Marshal(map[string]interface{}{
		"name":            "Casio Calculator",
		"description":     "Found after the exam",
		"found_date":      time.Now().Format(time.RFC3339),
		"found_location":  "Exam Hall",
		"pickup_location": "Academic Office",
		"category_id":     category.ID,
		"photos":          []string{},
	})
	c, w := authedRequest("POST", "/api/found-items/report", body, env.user.ID)

	env.handler.ReportFoundItem(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFoundItemHandler_DeleteCascades(t *testing.T) {
	env := setupFoundItemTestEnv(t)
	item := env.createItemWithClaim(t)

	c, w := authedRequest("DELETE", "/api/found-items/1", nil, env.user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.handler.DeleteFoundItem(c)

	require.Equal(t, http.StatusOK, w.Code)

	var items, claims, photos int64
	env.db.Model(&models.FoundItem{}).Where("id = ?", item.ID).Count(&items)
	env.db.Model(&models.Claim{}).Where("found_item_id = ?", item.ID).Count(&claims)
	env.db.Model(&models.FoundItemPhoto{}).Where("found_item_id = ?", item.ID).Count(&photos)
	require.Zero(t, items)
	require.Zero(t, claims)
	require.Zero(t, photos)
}

func TestFoundItemHandler_DeleteNotOwner(t *testing.T) {
	env := setupFoundItemTestEnv(t)
	item := env.createItemWithClaim(t)

	c, w := authedRequest("DELETE", "/api/found-items/1", nil, env.other.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.handler.DeleteFoundItem(c)

	require.Equal(t, http.StatusNotFound, w.Code)

	var items int64
	env.db.Model(&models.FoundItem{}).Where("id = ?", item.ID).Count(&items)
	require.Equal(t, int64(1), items)
}

func TestFoundItemHandler_ListWithSearch(t *testing.T) {
	env := setupFoundItemTestEnv(t)
	env.createItemWithClaim(t)

	r := gin.New()
	r.GET("/api/found-items", env.handler.ListFoundItems)

	req := httptest.NewRequest(http.MethodGet, "/api/found-items?search=calculator", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	items := response["items"].([]interface{})
	require.Len(t, items, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/found-items?search=umbrella", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	items = response["items"].([]interface{})
	require.Empty(t, items)
}

func TestFoundItemHandler_ListInvalidSortField(t *testing.T) {
	env := setupFoundItemTestEnv(t)

	r := gin.New()
	r.GET("/api/found-items", env.handler.ListFoundItems)

	req := httptest.NewRequest(http.MethodGet, "/api/found-items?sort_by=password_hash", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
