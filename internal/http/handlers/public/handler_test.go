package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tawseel-next/internal/config"
	"github.com/tawseel-next/internal/constants"
	"github.com/tawseel-next/internal/models"
	"github.com/tawseel-next/internal/provider"
	"github.com/tawseel-next/internal/repository"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type apiEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupPublicHandlerTest(t *testing.T, captcha config.CaptchaConfig) (*Handler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{
		JWT:     config.JWTConfig{SecretKey: "test-secret-0123456789abcdefghijklmnop", ExpireHours: 1},
		Captcha: captcha,
	}
	c := &provider.Container{
		Config:   cfg,
		UserRepo: repository.NewUserRepository(db),
	}
	c.AuthService = service.NewAuthService(cfg, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(cfg.Captcha)

	h := New(c)
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/captcha/config", h.GetCaptchaConfig)
	r.GET("/captcha/image", h.GetImageCaptcha)
	r.POST("/auth/login", h.Login)
	return h, r
}

func createLoginUser(t *testing.T, h *Handler, email, password string) *models.User {
	t.Helper()
	hash, err := service.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{Username: "staff", Email: email, PasswordHash: hash, Role: constants.RoleDataEntry}
	if err := h.UserRepo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func serve(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Locale", "en")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env apiEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return w, env
}

func TestLoginSetsSessionCookie(t *testing.T) {
	h, r := setupPublicHandlerTest(t, config.CaptchaConfig{})
	user := createLoginUser(t, h, "entry@tawseel.local", "secret123")

	w, env := serve(t, r, http.MethodPost, "/auth/login", gin.H{"email": "entry@tawseel.local", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var payload struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.Token == "" || payload.User.ID != user.ID {
		t.Fatalf("unexpected login payload: %+v", payload)
	}

	var session *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session_token" {
			session = cookie
		}
	}
	if session == nil || session.Value != payload.Token || !session.HttpOnly {
		t.Fatalf("expected http-only session cookie carrying the token, got %+v", session)
	}

	claims, err := h.AuthService.ParseJWT(payload.Token)
	if err != nil || claims.UserID != user.ID || claims.Role != constants.RoleDataEntry {
		t.Fatalf("token should identify the user: claims=%+v err=%v", claims, err)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("response must not expose the password hash: %s", w.Body.String())
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h, r := setupPublicHandlerTest(t, config.CaptchaConfig{})
	createLoginUser(t, h, "entry@tawseel.local", "secret123")

	w, env := serve(t, r, http.MethodPost, "/auth/login", gin.H{"email": "entry@tawseel.local", "password": "wrong"})
	if w.Code != http.StatusUnauthorized || env.Msg != "Invalid email or password" {
		t.Fatalf("bad password want 401 got %d msg=%q", w.Code, env.Msg)
	}

	w, _ = serve(t, r, http.MethodPost, "/auth/login", gin.H{"email": "nobody@tawseel.local", "password": "secret123"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email want 401 got %d", w.Code)
	}

	w, _ = serve(t, r, http.MethodPost, "/auth/login", gin.H{"email": "entry@tawseel.local"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing password want 400 got %d", w.Code)
	}
}

func TestLoginRequiresCaptchaWhenEnabled(t *testing.T) {
	h, r := setupPublicHandlerTest(t, config.CaptchaConfig{Provider: constants.CaptchaProviderImage, Login: true})
	createLoginUser(t, h, "entry@tawseel.local", "secret123")

	w, env := serve(t, r, http.MethodPost, "/auth/login", gin.H{"email": "entry@tawseel.local", "password": "secret123"})
	if w.Code != http.StatusBadRequest || env.Msg != "Captcha is required" {
		t.Fatalf("missing captcha want 400 got %d msg=%q", w.Code, env.Msg)
	}

	w, _ = serve(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":           "entry@tawseel.local",
		"password":        "secret123",
		"captcha_payload": gin.H{"captcha_id": "unknown", "captcha_code": "abcde"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("wrong captcha want 400 got %d", w.Code)
	}
}

func TestCaptchaEndpoints(t *testing.T) {
	_, r := setupPublicHandlerTest(t, config.CaptchaConfig{})
	w, env := serve(t, r, http.MethodGet, "/captcha/config", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("config want 200 got %d", w.Code)
	}
	var setting service.CaptchaPublicSetting
	_ = json.Unmarshal(env.Data, &setting)
	if setting.Provider != constants.CaptchaProviderNone || setting.Login {
		t.Fatalf("unexpected captcha setting %+v", setting)
	}

	w, _ = serve(t, r, http.MethodGet, "/captcha/image", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("image captcha without provider want 400 got %d", w.Code)
	}

	_, r = setupPublicHandlerTest(t, config.CaptchaConfig{Provider: constants.CaptchaProviderImage, Login: true})
	w, env = serve(t, r, http.MethodGet, "/captcha/image", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("image captcha want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var challenge struct {
		CaptchaID   string `json:"captcha_id"`
		ImageBase64 string `json:"image_base64"`
	}
	_ = json.Unmarshal(env.Data, &challenge)
	if challenge.CaptchaID == "" || !strings.HasPrefix(challenge.ImageBase64, "data:image/") {
		t.Fatalf("unexpected challenge %+v", challenge)
	}
}

func TestHealthReportsDatabase(t *testing.T) {
	_, r := setupPublicHandlerTest(t, config.CaptchaConfig{})
	w, env := serve(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var status map[string]string
	_ = json.Unmarshal(env.Data, &status)
	if status["database"] != "ok" || status["redis"] != "disabled" {
		t.Fatalf("unexpected health %+v", status)
	}
}
