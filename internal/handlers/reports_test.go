package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusconnect/lost-and-found-api/internal/database"
	"github.com/campusconnect/lost-and-found-api/internal/mailer"
	"github.com/campusconnect/lost-and-found-api/internal/models"
	"github.com/campusconnect/lost-and-found-api/internal/repository"
	"github.com/campusconnect/lost-and-found-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ReportHandlerTestSuite defines the test suite for ReportHandler
type ReportHandlerTestSuite struct {
	suite.Suite
	db       *gorm.DB
	mail     *mailer.Recorder
	resolver *services.StatusResolver
	handler  *ReportHandler
}

// SetupTest runs before each test
func (suite *ReportHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.LostItem{},
		&models.LostItemPhoto{},
		&models.Report{},
		&models.FoundItem{},
		&models.FoundItemPhoto{},
		&models.Claim{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	reportRepo := repository.NewReportRepository(suite.db)
	claimRepo := repository.NewClaimRepository(suite.db)
	lostItemRepo := repository.NewLostItemRepository(suite.db)

	suite.mail = mailer.NewRecorder()
	suite.resolver = services.NewStatusResolver(claimRepo, reportRepo)
	reportService := services.NewReportService(reportRepo, lostItemRepo, suite.mail)
	suite.handler = NewReportHandler(reportService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ReportHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ReportHandlerTestSuite) createTestUser(name, email string) *models.User {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hashedpassword",
		RollNumber:   name + "_ROLL",
	}
	suite.db.Create(user)
	return user
}

func (suite *ReportHandlerTestSuite) createTestLostItem(name string, posterID uint64) *models.LostItem {
	category := &models.Category{Name: name + " category"}
	suite.db.Create(category)

	item := &models.LostItem{
		Name:         name,
		Description:  "Test Description",
		LostDate:     time.Now(),
		LostLocation: "Cafeteria",
		PostedBy:     posterID,
		CategoryID:   category.ID,
	}
	suite.db.Create(item)
	return item
}

func (suite *ReportHandlerTestSuite) createTestReport(itemID, finderID uint64) *models.Report {
	report := &models.Report{
		LostItemID:     itemID,
		UserWhoFound:   finderID,
		Message:        "Found it near the gym",
		PickupLocation: "Hostel Office",
		Status:         models.ReportStatusPending,
	}
	suite.db.Create(report)
	return report
}

func (suite *ReportHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
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

func (suite *ReportHandlerTestSuite) TestCreateReport_SuccessNotifiesOwner() {
	owner := suite.createTestUser("owner", "owner@example.com")
	finder := suite.createTestUser("finder", "finder@example.com")
	item := suite.createTestLostItem("Blue Wallet", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"lost_item_id":    item.ID,
		"message":         "Found it near the gym",
		"pickup_location": "Hostel Office",
	})
	c, w := suite.createAuthContext("POST", "/api/report-lost-found/", body, finder.ID)

	suite.handler.CreateReport(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	report := response["report"].(map[string]interface{})
	assert.Equal(suite.T(), "Pending", report["status"])

	// The item owner is told where to pick it up and what the finder said
	sent := suite.mail.Sent()
	suite.Require().Len(sent, 1)
	assert.Equal(suite.T(), owner.Email, sent[0].To)
	assert.Contains(suite.T(), sent[0].HTML, "Hostel Office")
	assert.Contains(suite.T(), sent[0].HTML, "Found it near the gym")
}

func (suite *ReportHandlerTestSuite) TestCreateReport_NoMessageFallback() {
	owner := suite.createTestUser("owner", "owner@example.com")
	finder := suite.createTestUser("finder", "finder@example.com")
	item := suite.createTestLostItem("Blue Wallet", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"lost_item_id":    item.ID,
		"pickup_location": "Hostel Office",
	})
	c, w := suite.createAuthContext("POST", "/api/report-lost-found/", body, finder.ID)

	suite.handler.CreateReport(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	sent := suite.mail.Sent()
	suite.Require().Len(sent, 1)
	assert.Contains(suite.T(), sent[0].HTML, "No message provided")
}

func (suite *ReportHandlerTestSuite) TestCreateReport_LostItemMissing() {
	finder := suite.createTestUser("finder", "finder@example.com")

	body, _ := json.Marshal(map[string]interface{}{
		"lost_item_id":    999,
		"pickup_location": "Hostel Office",
	})
	c, w := suite.createAuthContext("POST", "/api/report-lost-found/", body, finder.ID)

	suite.handler.CreateReport(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Empty(suite.T(), suite.mail.Sent())

	var count int64
	suite.db.Model(&models.Report{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *ReportHandlerTestSuite) TestCreateReport_PickupLocationRequired() {
	owner := suite.createTestUser("owner", "owner@example.com")
	finder := suite.createTestUser("finder", "finder@example.com")
	item := suite.createTestLostItem("Blue Wallet", owner.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"lost_item_id": item.ID,
	})
	c, w := suite.createAuthContext("POST", "/api/report-lost-found/", body, finder.ID)

	suite.handler.CreateReport(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ReportHandlerTestSuite) TestUpdateReportStatus_ReturnedResolvesItem() {
	owner := suite.createTestUser("owner", "owner@example.com")
	finder := suite.createTestUser("finder", "finder@example.com")
	item := suite.createTestLostItem("Blue Wallet", owner.ID)
	report := suite.createTestReport(item.ID, finder.ID)

	body, _ := json.Marshal(map[string]string{"status": "Returned"})
	c, w := suite.createAuthContext("PATCH", "/api/report-lost-found/status/1", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateReportStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.Report
	suite.db.First(&updated, report.ID)
	assert.Equal(suite.T(), models.ReportStatusReturned, updated.Status)

	status, err := suite.resolver.ForLostItem(item.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.DisplayStatusResolved, status)
}

func (suite *ReportHandlerTestSuite) TestUpdateReportStatus_RevertToPending() {
	owner := suite.createTestUser("owner", "owner@example.com")
	finder := suite.createTestUser("finder", "finder@example.com")
	item := suite.createTestLostItem("Blue Wallet", owner.ID)
	report := suite.createTestReport(item.ID, finder.ID)
	suite.db.Model(report).Update("status", models.ReportStatusReturned)

	body, _ := json.Marshal(map[string]string{"status": "Pending"})
	c, w := suite.createAuthContext("PATCH", "/api/report-lost-found/status/1", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateReportStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	status, err := suite.resolver.ForLostItem(item.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.DisplayStatusPending, status)
}

func (suite *ReportHandlerTestSuite) TestUpdateReportStatus_InvalidStatus() {
	owner := suite.createTestUser("owner", "owner@example.com")
	finder := suite.createTestUser("finder", "finder@example.com")
	item := suite.createTestLostItem("Blue Wallet", owner.ID)
	suite.createTestReport(item.ID, finder.ID)

	body, _ := json.Marshal(map[string]string{"status": "Done"})
	c, w := suite.createAuthContext("PATCH", "/api/report-lost-found/status/1", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateReportStatus(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ReportHandlerTestSuite) TestUpdateReportStatus_NotItemPoster() {
	owner := suite.createTestUser("owner", "owner@example.com")
	finder := suite.createTestUser("finder", "finder@example.com")
	item := suite.createTestLostItem("Blue Wallet", owner.ID)
	suite.createTestReport(item.ID, finder.ID)

	// The finder cannot mark their own report Returned
	body, _ := json.Marshal(map[string]string{"status": "Returned"})
	c, w := suite.createAuthContext("PATCH", "/api/report-lost-found/status/1", body, finder.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.UpdateReportStatus(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var unchanged models.Report
	suite.db.First(&unchanged, 1)
	assert.Equal(suite.T(), models.ReportStatusPending, unchanged.Status)
}

func (suite *ReportHandlerTestSuite) TestUpdateReportStatus_ReportMissing() {
	owner := suite.createTestUser("owner", "owner@example.com")

	body, _ := json.Marshal(map[string]string{"status": "Returned"})
	c, w := suite.createAuthContext("PATCH", "/api/report-lost-found/status/999", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	suite.handler.UpdateReportStatus(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ReportHandlerTestSuite) TestListReportsAboutMyItems() {
	owner := suite.createTestUser("owner", "owner@example.com")
	finder := suite.createTestUser("finder", "finder@example.com")
	item := suite.createTestLostItem("Blue Wallet", owner.ID)
	suite.createTestReport(item.ID, finder.ID)

	otherOwner := suite.createTestUser("other", "other@example.com")
	otherItem := suite.createTestLostItem("Red Umbrella", otherOwner.ID)
	suite.createTestReport(otherItem.ID, finder.ID)

	c, w := suite.createAuthContext("GET", "/api/report-lost-found/about-user-lost-items", nil, owner.ID)

	suite.handler.ListReportsAboutMyItems(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	reports := response["reports"].([]interface{})
	suite.Require().Len(reports, 1)

	first := reports[0].(map[string]interface{})
	assert.Equal(suite.T(), float64(item.ID), first["lost_item_id"])
}

func (suite *ReportHandlerTestSuite) TestDeleteReport_Own() {
	owner := suite.createTestUser("owner", "owner@example.com")
	finder := suite.createTestUser("finder", "finder@example.com")
	item := suite.createTestLostItem("Blue Wallet", owner.ID)
	report := suite.createTestReport(item.ID, finder.ID)

	c, w := suite.createAuthContext("DELETE", "/api/report-lost-found/1", nil, finder.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteReport(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Report{}).Where("id = ?", report.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *ReportHandlerTestSuite) TestDeleteReport_NotOwner() {
	owner := suite.createTestUser("owner", "owner@example.com")
	finder := suite.createTestUser("finder", "finder@example.com")
	item := suite.createTestLostItem("Blue Wallet", owner.ID)
	suite.createTestReport(item.ID, finder.ID)

	// The item owner cannot delete the finder's report
	c, w := suite.createAuthContext("DELETE", "/api/report-lost-found/1", nil, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.DeleteReport(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.Report{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func TestReportHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}
