package service

import (
	"strings"
	"sync"
	"time"

	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/constants"

	"github.com/mojocn/base64Captcha"
)

const captchaCharset = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

// CaptchaVerifyPayload captcha fields sent with a protected request
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge image challenge returned to the client
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaPublicSetting what the login page needs to know
type CaptchaPublicSetting struct {
	Provider string `json:"provider"`
	Login    bool   `json:"login"`
}

// CaptchaService image captcha for the login scene
type CaptchaService struct {
	cfg config.CaptchaConfig

	once  sync.Once
	store base64Captcha.Store
}

// NewCaptchaService creates the captcha service
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

func (s *CaptchaService) provider() string {
	provider := strings.ToLower(strings.TrimSpace(s.cfg.Provider))
	if provider == "" {
		return constants.CaptchaProviderNone
	}
	return provider
}

// PublicSetting provider and scene switches
func (s *CaptchaService) PublicSetting() CaptchaPublicSetting {
	return CaptchaPublicSetting{Provider: s.provider(), Login: s.sceneEnabled(constants.CaptchaSceneLogin)}
}

func (s *CaptchaService) sceneEnabled(scene string) bool {
	if s.provider() == constants.CaptchaProviderNone {
		return false
	}
	switch scene {
	case constants.CaptchaSceneLogin:
		return s.cfg.Login
	default:
		return false
	}
}

func (s *CaptchaService) imageStore() base64Captcha.Store {
	s.once.Do(func() {
		maxStore := s.cfg.Image.MaxStore
		if maxStore <= 0 {
			maxStore = 10240
		}
		expire := s.cfg.Image.ExpireSeconds
		if expire <= 0 {
			expire = 300
		}
		s.store = base64Captcha.NewMemoryStore(maxStore, time.Duration(expire)*time.Second)
	})
	return s.store
}

// GenerateImageChallenge new image captcha
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if s.provider() != constants.CaptchaProviderImage {
		return nil, ErrCaptchaConfigInvalid
	}
	image := s.cfg.Image
	driver := base64Captcha.NewDriverString(
		positiveOrDefault(image.Height, 80),
		positiveOrDefault(image.Width, 240),
		image.NoiseCount,
		image.ShowLine,
		positiveOrDefault(image.Length, 5),
		captchaCharset,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	id, b64s, _, err := base64Captcha.NewCaptcha(driver, s.imageStore()).Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify checks the captcha when the scene requires one
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.sceneEnabled(scene) {
		return nil
	}
	if s.provider() != constants.CaptchaProviderImage {
		return ErrCaptchaConfigInvalid
	}
	id := strings.TrimSpace(payload.CaptchaID)
	code := strings.TrimSpace(payload.CaptchaCode)
	if id == "" || code == "" {
		return ErrCaptchaRequired
	}
	if !s.imageStore().Verify(id, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func positiveOrDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
