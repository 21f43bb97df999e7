package dto

type MensajeStats struct {
	Total      int64 `json:"total"`
	Pendientes int64 `json:"pendientes"`
}

type StatsResponse struct {
	Usuarios int64        `json:"usuarios"`
	Mensajes MensajeStats `json:"mensajes"`
	Builds   int64        `json:"builds"`
	Resenas  int64        `json:"resenas"`
	Eventos  int64        `json:"eventos"`
}

type CrearUsuarioRequest struct {
	ShopifyCustomerID ExternalID `json:"shopify_customer_id" validate:"required"`
	Email             string     `json:"email" validate:"required,email"`
	Nombre            string     `json:"nombre"`
}

type SetupWebhooksRequest struct {
	BaseURL string `json:"baseUrl" validate:"omitempty,url"`
}
