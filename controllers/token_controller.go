package controllers

import (
	"chamcong/dto"
	"chamcong/models"
	"chamcong/response"
	"chamcong/services"
	"chamcong/services/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TokenController phục vụ phát hành và tra cứu mã điểm danh trong ngày
type TokenController struct {
	tokenService *services.TokenService
}

func NewTokenController(db *gorm.DB, clock services.Clock) *TokenController {
	return &TokenController{
		tokenService: services.NewTokenService(services.TokenServiceOptions{
			Store:  services.NewGormTokenStore(db),
			Clock:  clock,
			Logger: logger.NewDefaultLogger(logger.InfoLevel),
		}),
	}
}

func toTokenResponse(token *models.DailyToken) dto.TokenResponse {
	return dto.TokenResponse{
		ID:        token.ID,
		CompanyID: token.CompanyID,
		Date:      token.Date,
		Token:     token.Token,
		IssuedBy:  token.IssuedBy,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
}

// IssueToken phát hành mã điểm danh cho ngày hôm nay. Idempotent:
// bấm phát hành nhiều lần trong ngày vẫn trả về đúng một mã.
func (tc *TokenController) IssueToken(c *gin.Context) {
	userID := c.GetUint("userID")
	companyID := c.GetUint("companyID")

	token, err := tc.tokenService.IssueOrGetToday(c.Request.Context(), companyID, userID)
	if err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, toTokenResponse(token))
}

// GetTodayToken tra cứu mã điểm danh hôm nay, không phát hành mới
func (tc *TokenController) GetTodayToken(c *gin.Context) {
	companyID := c.GetUint("companyID")

	token, err := tc.tokenService.GetToday(c.Request.Context(), companyID)
	if err != nil {
		response.ServerError(c)
		return
	}
	if token == nil {
		response.NotFound(c)
		return
	}

	response.Success(c, toTokenResponse(token))
}
