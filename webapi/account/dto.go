package account

// UpdateProfileInput is a partial profile update. Absent fields are left untouched.
type UpdateProfileInput struct {
	DisplayName           *string `json:"displayName" validate:"omitempty,min=1,max=100"`
	PhotoURL              *string `json:"photoUrl" validate:"omitempty,max=2048"`
	ShareWithFriends      *bool   `json:"shareWithFriends"`
	AnalyticsShareEnabled *bool   `json:"analyticsShareEnabled"`
}
