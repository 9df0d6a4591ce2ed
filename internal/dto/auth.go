package dto

// LoginRequest carries the Google-issued identity assertion (the signed
// credential produced by the sign-in widget).
type LoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// SetParamRequest carries the value for POST /set/<param>.
type SetParamRequest struct {
	Value string `json:"value" binding:"required"`
}

// AuthParamsResponse is the common response of /login, /auth, /token and
// /set/<param>: the stored access token plus the user's publishing
// parameters. Empty strings mean "not set".
type AuthParamsResponse struct {
	Token        string `json:"token"`
	SheetID      string `json:"sheet_id"`
	ExternalPath string `json:"external_path"`
}
