package dto

// Response is the envelope every JSON endpoint answers with on success.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status            string `json:"status"`
	Timestamp         string `json:"timestamp"`
	AppDB             string `json:"app_db"`
	ThemeDB           string `json:"theme_db"`
	ShopifyConfigured bool   `json:"shopify_configured"`
}

// UsuarioPage is one offset page of the usuarios listing.
type UsuarioPage struct {
	Usuarios interface{} `json:"usuarios"`
	Total    int64       `json:"total"`
	Limit    int         `json:"limit"`
	Offset   int         `json:"offset"`
}
