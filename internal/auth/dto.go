package auth

// CredentialsRequest carries a signup or signin payload. Length bounds match
// the registration rules enforced at the API edge.
type CredentialsRequest struct {
	Username string `json:"username" binding:"required,min=4,max=20"`
	Password string `json:"password" binding:"required,min=8,max=25"`
}
