package converter

import (
	"schedula/internal/domain/entity"
	"schedula/pkg/dto"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                        profile.UserID,
		Email:                     profile.User.Email,
		FullName:                  profile.User.FullName,
		Phone:                     profile.User.Phone,
		MedicalRegistrationNumber: profile.MedicalRegistrationNumber,
		Specialization:            profile.Specialization,
		YearsOfExperience:         profile.YearsOfExperience,
		ClinicName:                profile.ClinicName,
		ClinicAddress:             profile.ClinicAddress,
		ConsultationFee:           profile.ConsultationFee,
		OnboardingStatus:          string(profile.OnboardingStatus),
		Locations:                 LocationsToResponses(profile.Locations),
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}
