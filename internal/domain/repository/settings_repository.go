package repository

// Well-known settings keys. Migration bookkeeping shares the same key-value
// store as the user-facing options.
const (
	SettingQRBaseURL       = "qr_base_url"
	SettingAutoGenerateQR  = "auto_generate_qr"
	SettingPublicAccess    = "public_access"
	SettingMigrationStatus = "migration_status"
	SettingMigratedCount   = "migrated_items_count"
)

// SettingsRepository is a generic key-value store for runtime options.
// Get returns domain.ErrNotFound for unknown keys.
type SettingsRepository interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
