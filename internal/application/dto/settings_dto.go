package dto

// SettingsResponse the runtime options of the inventory.
type SettingsResponse struct {
	QRBaseURL      string `json:"qr_base_url"`
	AutoGenerateQR bool   `json:"auto_generate_qr"`
	PublicAccess   bool   `json:"public_access"`
}

// UpdateSettingsRequest partial update of the runtime options.
type UpdateSettingsRequest struct {
	QRBaseURL      *string `json:"qr_base_url" validate:"omitempty,url"`
	AutoGenerateQR *bool   `json:"auto_generate_qr"`
	PublicAccess   *bool   `json:"public_access"`
}
