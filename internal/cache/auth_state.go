package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/maekabu-office/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// EmployeeAuthState 社員の認証スナップショット（セッション検証で DB を引かないため）
type EmployeeAuthState struct {
	EmployeeID     string `json:"employee_id"`
	EmployeeNumber string `json:"employee_number"`
	Role           string `json:"role"`
	TokenVersion   uint64 `json:"token_version"`
	UpdatedAt      int64  `json:"updated_at"`
}

func employeeAuthStateKey(employeeID string) string {
	return fmt.Sprintf("auth:employee:%s", employeeID)
}

// BuildEmployeeAuthState 社員モデルからスナップショットを作る
func BuildEmployeeAuthState(employee *models.Employee) *EmployeeAuthState {
	if employee == nil {
		return nil
	}
	return &EmployeeAuthState{
		EmployeeID:     employee.ID,
		EmployeeNumber: employee.EmployeeNumber,
		Role:           employee.Role,
		TokenVersion:   employee.TokenVersion,
		UpdatedAt:      time.Now().Unix(),
	}
}

// GetEmployeeAuthState スナップショットを読む
func (s *Store) GetEmployeeAuthState(ctx context.Context, employeeID string) (*EmployeeAuthState, bool, error) {
	if employeeID == "" {
		return nil, false, nil
	}
	var state EmployeeAuthState
	hit, err := s.GetJSON(ctx, employeeAuthStateKey(employeeID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetEmployeeAuthState スナップショットを書く
func (s *Store) SetEmployeeAuthState(ctx context.Context, state *EmployeeAuthState) error {
	if state == nil || state.EmployeeID == "" {
		return nil
	}
	return s.SetJSON(ctx, employeeAuthStateKey(state.EmployeeID), state, authStateCacheTTL)
}

// DelEmployeeAuthState スナップショットを削除する
func (s *Store) DelEmployeeAuthState(ctx context.Context, employeeID string) error {
	if employeeID == "" {
		return nil
	}
	return s.Del(ctx, employeeAuthStateKey(employeeID))
}
