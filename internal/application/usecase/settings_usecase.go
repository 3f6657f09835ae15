package usecase

import (
	"strconv"

	"github.com/vtcwoerden/materiaal-api/internal/application/dto"
	"github.com/vtcwoerden/materiaal-api/internal/domain/repository"
)

// SettingsDefaults are the fallbacks used when a key has never been written.
// They come from the static configuration so the engines never reach for an
// ambient global.
type SettingsDefaults struct {
	QRBaseURL      string
	AutoGenerateQR bool
	PublicAccess   bool
}

// SettingsUseCase reads and writes the runtime options backed by the
// key-value settings store.
type SettingsUseCase struct {
	repo     repository.SettingsRepository
	defaults SettingsDefaults
}

// NewSettingsUseCase builds the use case.
func NewSettingsUseCase(repo repository.SettingsRepository, defaults SettingsDefaults) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, defaults: defaults}
}

// Get returns the current options, falling back to the configured defaults
// for keys that were never set.
func (uc *SettingsUseCase) Get() (*dto.SettingsResponse, error) {
	return &dto.SettingsResponse{
		QRBaseURL:      uc.stringOr(repository.SettingQRBaseURL, uc.defaults.QRBaseURL),
		AutoGenerateQR: uc.boolOr(repository.SettingAutoGenerateQR, uc.defaults.AutoGenerateQR),
		PublicAccess:   uc.boolOr(repository.SettingPublicAccess, uc.defaults.PublicAccess),
	}, nil
}

// Update writes the provided fields and returns the resulting options.
func (uc *SettingsUseCase) Update(in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if in.QRBaseURL != nil {
		if err := uc.repo.Set(repository.SettingQRBaseURL, *in.QRBaseURL); err != nil {
			return nil, err
		}
	}
	if in.AutoGenerateQR != nil {
		if err := uc.repo.Set(repository.SettingAutoGenerateQR, strconv.FormatBool(*in.AutoGenerateQR)); err != nil {
			return nil, err
		}
	}
	if in.PublicAccess != nil {
		if err := uc.repo.Set(repository.SettingPublicAccess, strconv.FormatBool(*in.PublicAccess)); err != nil {
			return nil, err
		}
	}
	return uc.Get()
}

// QRBaseURL is the base every item QR payload is built from.
func (uc *SettingsUseCase) QRBaseURL() string {
	return uc.stringOr(repository.SettingQRBaseURL, uc.defaults.QRBaseURL)
}

// AutoGenerateQR reports whether QR URLs are (re)computed on create/rename.
func (uc *SettingsUseCase) AutoGenerateQR() bool {
	return uc.boolOr(repository.SettingAutoGenerateQR, uc.defaults.AutoGenerateQR)
}

// PublicAccess reports whether anonymous visitors may browse.
func (uc *SettingsUseCase) PublicAccess() bool {
	return uc.boolOr(repository.SettingPublicAccess, uc.defaults.PublicAccess)
}

func (uc *SettingsUseCase) stringOr(key, def string) string {
	v, err := uc.repo.Get(key)
	if err != nil || v == "" {
		return def
	}
	return v
}

func (uc *SettingsUseCase) boolOr(key string, def bool) bool {
	v, err := uc.repo.Get(key)
	if err != nil {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
