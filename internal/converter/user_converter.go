package converter

import (
	"schedula/internal/domain/entity"
	"schedula/pkg/dto"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	resp := &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        entity.RoleNameByID(user.RoleID),
		Phone:       user.Phone,
		DateOfBirth: user.DateOfBirth,
		Gender:      user.Gender,
		Address:     user.Address,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		resp.MedicalRegistrationNumber = user.DoctorProfile.MedicalRegistrationNumber
	}

	return resp
}
