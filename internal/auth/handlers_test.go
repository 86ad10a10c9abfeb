package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"solarne-backend/internal/models"
	"solarne-backend/internal/storage"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	if _, exists := f.users[user.Email]; exists {
		return storage.ErrEmailTaken
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func (f *fakeUserStore) CountUsers(_ context.Context) (int, error) {
	return len(f.users), nil
}

func newTestHandler(t *testing.T) (*Handler, *fakeUserStore, *TokenService) {
	t.Helper()
	store := newFakeUserStore()
	tokens := newTestTokenService("test-secret", 60)
	return NewHandler(store, tokens, testBcryptCost), store, tokens
}

func registerUser(t *testing.T, store *fakeUserStore, email, password string) {
	t.Helper()
	hash, err := HashPassword(password, testBcryptCost)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(context.Background(), &models.User{
		ID:           "u-" + email,
		Email:        email,
		PasswordHash: hash,
	}))
}

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestLogin_Success(t *testing.T) {
	h, store, tokens := newTestHandler(t)
	registerUser(t, store, "user@x.com", "password123")

	rec := postJSON(h.Login, `{"email":"user@x.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp["token"])

	claims, err := tokens.Parse(resp["token"])
	require.NoError(t, err)
	assert.Equal(t, "user@x.com", claims.Subject)
}

func TestLogin_RejectionsAreIndistinguishable(t *testing.T) {
	h, store, _ := newTestHandler(t)
	registerUser(t, store, "user@x.com", "password123")

	unknown := postJSON(h.Login, `{"email":"ghost@x.com","password":"password123"}`)
	wrongPass := postJSON(h.Login, `{"email":"user@x.com","password":"not-the-password"}`)

	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, wrongPass.Code, unknown.Code)
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestLogin_UnknownEmailDoesBcryptWork(t *testing.T) {
	// The unknown-email branch compares against dummyHash to keep its
	// timing in line with a real mismatch. That only holds if the record
	// is well-formed bcrypt; a malformed one short-circuits the compare.
	cost, err := bcrypt.Cost([]byte(dummyHash))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, bcrypt.DefaultCost)
	assert.False(t, CheckPassword("not-the-password", dummyHash))
}

func TestLogin_CaseSensitiveEmail(t *testing.T) {
	h, store, _ := newTestHandler(t)
	registerUser(t, store, "user@x.com", "password123")

	rec := postJSON(h.Login, `{"email":"User@x.com","password":"password123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidBody(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := postJSON(h.Login, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_Success(t *testing.T) {
	h, store, _ := newTestHandler(t)

	rec := postJSON(h.Signup, `{"email":"new@x.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "new@x.com", resp["email"])
	assert.NotContains(t, rec.Body.String(), "password")

	user := store.users["new@x.com"]
	require.NotNil(t, user)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, CheckPassword("password123", user.PasswordHash))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	h, store, _ := newTestHandler(t)

	first := postJSON(h.Signup, `{"email":"dup@x.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(h.Signup, `{"email":"dup@x.com","password":"different456"}`)
	assert.Equal(t, http.StatusBadRequest, second.Code)
	assert.Len(t, store.users, 1)
}

func TestSignup_MissingFields(t *testing.T) {
	h, _, _ := newTestHandler(t)

	for _, body := range []string{
		`{"email":"","password":"password123"}`,
		`{"email":"a@x.com","password":""}`,
		`{}`,
	} {
		rec := postJSON(h.Signup, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}
