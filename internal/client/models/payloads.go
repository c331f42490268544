package models

// Request bodies.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the signup payload. Phone and NationalID are
// optional; the backend validates them when present.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"nationalId,omitempty"`
}

// ProfileUpdate holds the mutable profile fields. Zero-valued fields are
// omitted so a partial update never clears data server-side.
type ProfileUpdate struct {
	Name        string         `json:"name,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

type UploadRequest struct {
	Plan string `json:"plan"`
}

type SetupPasswordRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// Response envelopes.

// AuthPayload is returned by login, register and setup-password: a fresh
// token plus the account it belongs to.
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type ProfileResponse struct {
	User *User `json:"user"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type AnalysisResponse struct {
	Analysis *Analysis `json:"analysis"`
}

type HistoryResponse struct {
	Analyses   []Analysis  `json:"analyses"`
	Pagination *Pagination `json:"pagination"`
}

type UploadStatus struct {
	ID       string         `json:"id"`
	Status   AnalysisStatus `json:"status"`
	Progress int            `json:"progress"`
}

type PlansResponse struct {
	Plans []Plan `json:"plans"`
}

type CreditsBalance struct {
	Credits int `json:"credits"`
}

type CreditsHistoryResponse struct {
	Events     []CreditEvent `json:"events"`
	Pagination *Pagination   `json:"pagination"`
}

type Settings struct {
	Notifications bool           `json:"notifications"`
	Language      string         `json:"language"`
	Extra         map[string]any `json:"extra,omitempty"`
}
