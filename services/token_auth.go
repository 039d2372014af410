package services

import (
	"encoding/json"
	"strings"

	"chamcong/errors"

	"github.com/dgrijalva/jwt-go"
)

// SessionInfo là danh tính lấy từ token phiên đăng nhập. Hệ thống điểm danh
// tin tưởng danh tính này như đã được lớp xác thực bên ngoài kiểm tra.
type SessionInfo struct {
	UserID    uint
	UserName  string
	CompanyID uint
	Role      int
}

// GetSessionFromToken lấy userID, companyID và role từ token phiên
func GetSessionFromToken(tokenString string) (*SessionInfo, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Token không hợp lệ", nil)
	}

	// Giải mã phần payload của token
	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Không thể giải mã token", err)
	}

	claimsMap := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claimsMap); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Không thể parse token", err)
	}

	// Trích xuất thông tin user từ claims
	userInfo, ok := claimsMap["userinfo"].(map[string]interface{})
	if !ok {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy thông tin user trong token", nil)
	}

	userID, okID := userInfo["userid"].(float64)
	if !okID {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy ID user trong token", nil)
	}

	companyID, okCompany := userInfo["companyid"].(float64)
	if !okCompany {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy công ty trong token", nil)
	}

	role, okRole := userInfo["role"].(float64)
	if !okRole {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Không tìm thấy role trong token", nil)
	}

	userName, _ := userInfo["username"].(string)

	return &SessionInfo{
		UserID:    uint(userID),
		UserName:  userName,
		CompanyID: uint(companyID),
		Role:      int(role),
	}, nil
}
