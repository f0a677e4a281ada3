package models

// Partner is a merchant integration that creates orders and hosts the
// payment page.
type Partner struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	ColorScheme        string `json:"color_scheme"`
	SuccessRedirectURI string `json:"success_redirect_uri"`
}

// CreatePartner is the request payload for partner registration.
type CreatePartner struct {
	Name               string `json:"name"`
	ColorScheme        string `json:"color_scheme"`
	SuccessRedirectURI string `json:"success_redirect_uri"`
}
