package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawhaus/dog-adoption/internal/auth"
	"github.com/pawhaus/dog-adoption/internal/handler"
	"github.com/pawhaus/dog-adoption/internal/repository/sqlite"
	"github.com/pawhaus/dog-adoption/internal/service"
)

const testJWTSecret = "handler-test-secret-32-chars!!!!"

func newAuthFixture(t *testing.T) (*handler.AuthHandler, *auth.TokenService) {
	t.Helper()
	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenService(testJWTSecret)
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := service.NewAuthService(db.Users(), tokens, auth.NewPasswordService(bcrypt.MinCost), logger)
	return handler.NewAuthHandler(svc, logger), tokens
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("valid registration", func(t *testing.T) {
		h, _ := newAuthFixture(t)

		rr := httptest.NewRecorder()
		h.HandleRegister(rr, postJSON("/api/register", `{"username":"alice","password":"password123"}`))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "User registered successfully", decodeMessage(t, rr))
	})

	t.Run("duplicate username", func(t *testing.T) {
		h, _ := newAuthFixture(t)

		h.HandleRegister(httptest.NewRecorder(), postJSON("/api/register", `{"username":"alice","password":"password123"}`))

		rr := httptest.NewRecorder()
		h.HandleRegister(rr, postJSON("/api/register", `{"username":"alice","password":"different1"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Username already taken", decodeMessage(t, rr))
	})

	t.Run("short password", func(t *testing.T) {
		h, _ := newAuthFixture(t)

		rr := httptest.NewRecorder()
		h.HandleRegister(rr, postJSON("/api/register", `{"username":"alice","password":"short"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		h, _ := newAuthFixture(t)

		rr := httptest.NewRecorder()
		h.HandleRegister(rr, postJSON("/api/register", `{"username":`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials return a usable token", func(t *testing.T) {
		h, tokens := newAuthFixture(t)
		h.HandleRegister(httptest.NewRecorder(), postJSON("/api/register", `{"username":"alice","password":"password123"}`))

		rr := httptest.NewRecorder()
		h.HandleLogin(rr, postJSON("/api/login", `{"username":"alice","password":"password123"}`))

		assert.Equal(t, http.StatusOK, rr.Code)

		var res struct {
			Token string `json:"token"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.NotEmpty(t, res.Token)

		// The token must validate with the same service the middleware uses.
		userID, err := tokens.Validate(res.Token)
		assert.NoError(t, err)
		assert.NotEmpty(t, userID)
	})

	t.Run("wrong password", func(t *testing.T) {
		h, _ := newAuthFixture(t)
		h.HandleRegister(httptest.NewRecorder(), postJSON("/api/register", `{"username":"alice","password":"password123"}`))

		rr := httptest.NewRecorder()
		h.HandleLogin(rr, postJSON("/api/login", `{"username":"alice","password":"wrongpass1"}`))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid credentials", decodeMessage(t, rr))
	})

	t.Run("unknown username gets the same error", func(t *testing.T) {
		h, _ := newAuthFixture(t)

		rr := httptest.NewRecorder()
		h.HandleLogin(rr, postJSON("/api/login", `{"username":"nobody","password":"password123"}`))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid credentials", decodeMessage(t, rr))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		h, _ := newAuthFixture(t)

		rr := httptest.NewRecorder()
		h.HandleLogin(rr, postJSON("/api/login", `not json`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
