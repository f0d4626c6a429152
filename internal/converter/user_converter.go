package converter

import (
	"eventplanner/internal/delivery/dto"
	"eventplanner/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. Secrets such
// as the password hash, OTP and social tokens are never copied.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:                   user.ID,
		FullName:             user.FullName,
		Role:                 user.Role,
		SignupType:           user.SignupType,
		VerifyEmail:          user.VerifyEmail,
		Bio:                  user.Bio,
		UploadsID:            user.UploadsID,
		EventTypePreferences: nonNil(user.EventTypePreferences),
		FoodPreferences:      nonNil(user.FoodPreferences),
		CreatedAt:            user.CreatedAt,
		UpdatedAt:            user.UpdatedAt,
	}
	if user.Email != nil {
		response.Email = *user.Email
	}

	return response
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *UserToResponse(&users[i]))
	}
	return responses
}

func UploadToResponse(upload *entity.Upload) *dto.UploadResponse {
	if upload == nil {
		return nil
	}
	return &dto.UploadResponse{
		ID:       upload.ID,
		FileName: upload.FileName,
		FileType: upload.FileType,
		FileURL:  upload.FileURL,
		Size:     upload.Size,
	}
}

func nonNil(list entity.StringList) []string {
	if list == nil {
		return []string{}
	}
	return list
}
