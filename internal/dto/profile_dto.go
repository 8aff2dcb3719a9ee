package dto

// CreateProfileRequest profile creation payload (JSON or multipart form).
// The optional image is read from the "image" form file.
type CreateProfileRequest struct {
	Bio         *string `json:"bio" form:"bio" binding:"omitempty,max=1000"`
	Phone       string  `json:"phone" form:"phone" binding:"required,min=6"`
	Address     *string `json:"address" form:"address" binding:"omitempty,max=255"`
	DateOfBirth *string `json:"date_of_birth" form:"date_of_birth" binding:"omitempty,datetime=2006-01-02,past_date"`
}

// UpdateProfileRequest partial profile update; nil fields are left unchanged
type UpdateProfileRequest struct {
	Bio         *string `json:"bio" form:"bio" binding:"omitempty,max=1000"`
	Phone       *string `json:"phone" form:"phone" binding:"omitempty,min=6"`
	Address     *string `json:"address" form:"address" binding:"omitempty,max=255"`
	DateOfBirth *string `json:"date_of_birth" form:"date_of_birth" binding:"omitempty,datetime=2006-01-02,past_date"`
}

// Updates returns the whitelisted columns present in the request
func (r *UpdateProfileRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Bio != nil {
		updates["bio"] = *r.Bio
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	if r.Address != nil {
		updates["address"] = *r.Address
	}
	if r.DateOfBirth != nil {
		updates["date_of_birth"] = *r.DateOfBirth
	}
	return updates
}

// ProfileResponse profile with resolved image URL
type ProfileResponse struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	Bio         *string `json:"bio"`
	Phone       string  `json:"phone"`
	Address     *string `json:"address"`
	DateOfBirth *string `json:"date_of_birth"`
	Image       *string `json:"image"`
	ImageURL    *string `json:"image_url"`
}
