package service

import (
	"context"
	"testing"
	"time"

	"bizdir/internal/api/models"
	"bizdir/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret-at-least-32-characters-long",
		JWTExpiry: 24 * time.Hour,
	}
}

func TestRegister_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, testAuthConfig())

	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = "11111111-1111-1111-1111-111111111111"
		}).
		Return(nil)

	user, token, err := authService.Register(context.Background(), "test@example.com", "password123")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NotEmpty(t, token)
	// stored password must be a bcrypt hash of the input
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_PasswordTooShort(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, testAuthConfig())

	_, _, err := authService.Register(context.Background(), "test@example.com", "short")

	assert.ErrorIs(t, err, ErrValidation)
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestRegister_EmailExists(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, testAuthConfig())

	existing := &models.User{ID: "u1", Email: "test@example.com"}
	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(existing, nil)

	_, _, err := authService.Register(context.Background(), "test@example.com", "password123")

	assert.ErrorIs(t, err, ErrEmailInUse)
	assert.ErrorIs(t, err, ErrConflict)
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestLogin_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, testAuthConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := &models.User{ID: "u1", Email: "test@example.com", Password: string(hash)}
	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)

	got, token, err := authService.Login(context.Background(), "test@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, testAuthConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := &models.User{ID: "u1", Email: "test@example.com", Password: string(hash)}
	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(user, nil)

	_, _, err = authService.Login(context.Background(), "test@example.com", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, testAuthConfig())

	mockUserRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := authService.Login(context.Background(), "nobody@example.com", "password123")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, testAuthConfig())

	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = "22222222-2222-2222-2222-222222222222"
		}).
		Return(nil)

	_, token, err := authService.Register(context.Background(), "test@example.com", "password123")
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, testAuthConfig())

	otherCfg := &config.Config{JWTSecret: "a-completely-different-secret-value!!", JWTExpiry: time.Hour}
	other := NewAuthService(mockUserRepo, otherCfg)

	mockUserRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	_, token, err := other.Register(context.Background(), "test@example.com", "password123")
	assert.NoError(t, err)

	_, err = authService.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	authService := NewAuthService(new(MockUserRepository), testAuthConfig())

	_, err := authService.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
