package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/stocklens/stocklens/internal/apperrors"
	"github.com/stocklens/stocklens/internal/model"
	"github.com/stocklens/stocklens/internal/repository"
)

// SettingKeyMarketDataToken is the settings key holding the Finnhub API token.
const SettingKeyMarketDataToken = "finnhub_api_token"

// SettingsService manages stored application settings. The market data API
// token is fernet-encrypted at rest when an encryption key is configured;
// without a key it is stored plaintext and flagged as such.
type SettingsService struct {
	settingRepo   *repository.SettingRepository
	key           *fernet.Key
	fallbackToken string
}

// NewSettingsService creates a new SettingsService.
// fernetKey is the base64 key for encrypting sensitive values; empty disables
// encryption. fallbackToken is the environment-provided API token used until
// one is stored.
func NewSettingsService(settingRepo *repository.SettingRepository, fernetKey, fallbackToken string) (*SettingsService, error) {
	s := &SettingsService{
		settingRepo:   settingRepo,
		fallbackToken: fallbackToken,
	}

	if fernetKey != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode fernet key: %w", err)
		}
		s.key = key
	}

	return s, nil
}

// GetMarketDataToken returns the effective Finnhub API token: the stored
// (decrypted) token when present, otherwise the environment fallback.
// Returns apperrors.ErrTokenNotConfigured when neither is available.
func (s *SettingsService) GetMarketDataToken() (string, error) {
	setting, err := s.settingRepo.GetSetting(SettingKeyMarketDataToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if s.fallbackToken == "" {
				return "", apperrors.ErrTokenNotConfigured
			}
			return s.fallbackToken, nil
		}
		return "", err
	}

	if !setting.Encrypted {
		return setting.Value, nil
	}

	if s.key == nil {
		return "", fmt.Errorf("stored token is encrypted but no fernet key is configured")
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(setting.Value), 0, []*fernet.Key{s.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt stored token")
	}

	return string(plaintext), nil
}

// SetMarketDataToken stores the Finnhub API token, encrypted when a fernet
// key is configured.
func (s *SettingsService) SetMarketDataToken(token string) error {
	setting := model.Setting{
		Key:   SettingKeyMarketDataToken,
		Value: token,
	}

	if s.key != nil {
		ciphertext, err := fernet.EncryptAndSign([]byte(token), s.key)
		if err != nil {
			return fmt.Errorf("failed to encrypt token: %w", err)
		}
		setting.Value = string(ciphertext)
		setting.Encrypted = true
	}

	return s.settingRepo.SetSetting(setting)
}

// MarketDataStatus reports whether a token is configured and where it came
// from, without exposing the token itself.
type MarketDataStatus struct {
	Configured bool   `json:"configured"`
	Source     string `json:"source"` // "stored", "environment" or "none"
	Encrypted  bool   `json:"encrypted"`
}

// GetMarketDataStatus returns the current token configuration state.
func (s *SettingsService) GetMarketDataStatus() (MarketDataStatus, error) {
	setting, err := s.settingRepo.GetSetting(SettingKeyMarketDataToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if s.fallbackToken == "" {
				return MarketDataStatus{Source: "none"}, nil
			}
			return MarketDataStatus{Configured: true, Source: "environment"}, nil
		}
		return MarketDataStatus{}, err
	}

	return MarketDataStatus{
		Configured: true,
		Source:     "stored",
		Encrypted:  setting.Encrypted,
	}, nil
}
