package converter

import (
	"schedula/internal/domain/entity"
	"schedula/pkg/dto"
)

// LocationToResponse converts a PracticeLocation entity to LocationResponse DTO
func LocationToResponse(location *entity.PracticeLocation) *dto.LocationResponse {
	if location == nil {
		return nil
	}

	return &dto.LocationResponse{
		ID:      location.ID,
		Name:    location.Name,
		Address: location.Address,
		Phone:   location.Phone,
	}
}

// LocationsToResponses converts a slice of PracticeLocation entities
func LocationsToResponses(locations []entity.PracticeLocation) []dto.LocationResponse {
	if len(locations) == 0 {
		return nil
	}
	responses := make([]dto.LocationResponse, len(locations))
	for i := range locations {
		responses[i] = *LocationToResponse(&locations[i])
	}
	return responses
}

// WeeklyScheduleToResponses converts schedule entries to DTOs
func WeeklyScheduleToResponses(entries []entity.WeeklyScheduleEntry) []dto.WeeklyScheduleEntryResponse {
	responses := make([]dto.WeeklyScheduleEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = dto.WeeklyScheduleEntryResponse{
			Day:         entry.Day,
			StartTime:   entry.StartTime,
			EndTime:     entry.EndTime,
			IsAvailable: entry.IsAvailable,
		}
	}
	return responses
}

// ExceptionsToResponses converts availability exceptions to DTOs
func ExceptionsToResponses(exceptions []entity.AvailabilityException) []dto.AvailabilityExceptionResponse {
	responses := make([]dto.AvailabilityExceptionResponse, len(exceptions))
	for i, exception := range exceptions {
		responses[i] = dto.AvailabilityExceptionResponse{
			Date:      exception.Date.Format("2006-01-02"),
			Type:      string(exception.Type),
			StartTime: exception.StartTime,
			EndTime:   exception.EndTime,
			Reason:    exception.Reason,
		}
	}
	return responses
}
