package user_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	appuser "github.com/greengarden/greenery/application/user"
	"github.com/greengarden/greenery/cmd/config"
	"github.com/greengarden/greenery/constant"
	redismocks "github.com/greengarden/greenery/mocks/repository/redis"
	usermocks "github.com/greengarden/greenery/mocks/repository/user"
	"github.com/greengarden/greenery/model"
	cerr "github.com/greengarden/greenery/utils/errors"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			JWTExpiration:  time.Hour,
			SessionExpTime: time.Hour,
		},
	}
}

func TestUserApp_Register(t *testing.T) {
	type fields struct {
		config    *config.Config
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.Repository
	}
	type args struct {
		ctx context.Context
		req *model.RegisterRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		want     *model.RegisterResponse
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: register new user with user role",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Test User",
					Email:    "test@example.com",
					Phone:    "081234567890",
					Password: "password123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "test@example.com"}).
					Return(nil, nil).
					Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "081234567890"}).
					Return(nil, nil).
					Once()
				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.Name == "Test User" &&
							ent.Email == "test@example.com" &&
							ent.Phone == "081234567890" &&
							ent.Role == constant.RoleUser &&
							ent.PasswordHash != ""
					})).
					Return(&model.UserEntity{
						ID:    1,
						Name:  "Test User",
						Email: "test@example.com",
						Phone: "081234567890",
						Role:  constant.RoleUser,
					}, nil).
					Once()
			},
			want: &model.RegisterResponse{
				Name:  "Test User",
				Email: "test@example.com",
			},
			wantErr: false,
		},
		{
			name: "error: email already exists",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Test User",
					Email:    "existing@example.com",
					Phone:    "081234567890",
					Password: "password123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "existing@example.com"}).
					Return(&model.UserEntity{ID: 1, Email: "existing@example.com"}, nil).
					Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
		{
			name: "error: phone already exists",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			args: args{
				ctx: context.Background(),
				req: &model.RegisterRequest{
					Name:     "Test User",
					Email:    "test@example.com",
					Phone:    "081234567890",
					Password: "password123",
				},
			},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "test@example.com"}).
					Return(nil, nil).
					Once()
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "081234567890"}).
					Return(&model.UserEntity{ID: 2, Phone: "081234567890"}, nil).
					Once()
			},
			want:    nil,
			wantErr: true,
			errCode: constant.ErrCredentialExists,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appuser.NewUserApp(tt.fields.config, tt.fields.userRepo, tt.fields.redisRepo)

			got, err := app.Register(tt.args.ctx, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Register() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Register() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUserApp_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword() error = %v", err)
	}

	type fields struct {
		config    *config.Config
		userRepo  *usermocks.UserRepository
		redisRepo *redismocks.Repository
	}
	tests := []struct {
		name     string
		fields   fields
		req      *model.LoginRequest
		mockCall func(f fields)
		wantRole string
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: login by email returns role and token",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Identifier: "test@example.com", Password: "password123"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "test@example.com"}).
					Return(&model.UserEntity{
						ID:           1,
						Name:         "Test User",
						Email:        "test@example.com",
						PasswordHash: string(hashed),
						Role:         constant.RoleAdmin,
					}, nil).
					Once()
				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(1), time.Hour).
					Return(nil).
					Once()
			},
			wantRole: constant.RoleAdmin,
			wantErr:  false,
		},
		{
			name: "success: login by phone",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Identifier: "081234567890", Password: "password123"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Phone: "081234567890"}).
					Return(&model.UserEntity{
						ID:           2,
						Name:         "Phone User",
						PasswordHash: string(hashed),
						Role:         constant.RoleUser,
					}, nil).
					Once()
				f.redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(2), time.Hour).
					Return(nil).
					Once()
			},
			wantRole: constant.RoleUser,
			wantErr:  false,
		},
		{
			name: "error: user not found",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Identifier: "missing@example.com", Password: "password123"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "missing@example.com"}).
					Return(nil, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: wrong password",
			fields: fields{
				config:    testConfig(),
				userRepo:  usermocks.NewUserRepository(t),
				redisRepo: redismocks.NewRepository(t),
			},
			req: &model.LoginRequest{Identifier: "test@example.com", Password: "wrong"},
			mockCall: func(f fields) {
				f.userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "test@example.com"}).
					Return(&model.UserEntity{
						ID:           1,
						PasswordHash: string(hashed),
					}, nil).
					Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidPassword,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				ttFields := tt.fields
				tt.mockCall(ttFields)
			}
			app := appuser.NewUserApp(tt.fields.config, tt.fields.userRepo, tt.fields.redisRepo)

			got, err := app.Login(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Token == "" {
				t.Fatal("Login() returned empty token")
			}
			if got.Role != tt.wantRole {
				t.Fatalf("Login() role = %s, want %s", got.Role, tt.wantRole)
			}
		})
	}
}

func TestUserApp_ResolveViewer(t *testing.T) {
	t.Run("empty token resolves anonymous", func(t *testing.T) {
		app := appuser.NewUserApp(testConfig(), usermocks.NewUserRepository(t), redismocks.NewRepository(t))

		viewer, err := app.ResolveViewer(context.Background(), "")
		if err != nil {
			t.Fatalf("ResolveViewer() error = %v", err)
		}
		if !viewer.IsAnonymous() {
			t.Fatalf("ResolveViewer() = %+v, want anonymous", viewer)
		}
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		app := appuser.NewUserApp(testConfig(), usermocks.NewUserRepository(t), redismocks.NewRepository(t))

		_, err := app.ResolveViewer(context.Background(), "not-a-jwt")
		var ce cerr.CustomError
		if !errors.As(err, &ce) {
			t.Fatalf("error type = %T, want CustomError", err)
		}
		if ce.ErrorCode() != constant.ErrorTypeCode[constant.ErrUnauthorize] {
			t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[constant.ErrUnauthorize])
		}
	})

	t.Run("role on the profile decides admin-ness", func(t *testing.T) {
		tests := []struct {
			name      string
			role      string
			wantAdmin bool
		}{
			{name: "admin role", role: constant.RoleAdmin, wantAdmin: true},
			{name: "user role", role: constant.RoleUser, wantAdmin: false},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
				if err != nil {
					t.Fatalf("bcrypt.GenerateFromPassword() error = %v", err)
				}

				userRepo := usermocks.NewUserRepository(t)
				redisRepo := redismocks.NewRepository(t)
				app := appuser.NewUserApp(testConfig(), userRepo, redisRepo)

				// Log in for a real token, capturing the session jti.
				var jti string
				userRepo.
					On("Get", mock.Anything, &model.UserFilter{Email: "test@example.com"}).
					Return(&model.UserEntity{
						ID:           4,
						Email:        "test@example.com",
						PasswordHash: string(hashed),
						Role:         tt.role,
					}, nil).
					Once()
				redisRepo.
					On("SetSession", mock.Anything, mock.AnythingOfType("string"), uint64(4), time.Hour).
					Run(func(args mock.Arguments) {
						jti = args.String(1)
					}).
					Return(nil).
					Once()

				login, err := app.Login(context.Background(), &model.LoginRequest{
					Identifier: "test@example.com",
					Password:   "password123",
				})
				if err != nil {
					t.Fatalf("Login() error = %v", err)
				}

				redisRepo.
					On("GetSession", mock.Anything, mock.AnythingOfType("string")).
					Return(func(_ context.Context, sessionID string) (uint64, error) {
						if sessionID != jti {
							return 0, errors.New("unknown session")
						}
						return 4, nil
					}).
					Once()
				userRepo.
					On("Get", mock.Anything, &model.UserFilter{ID: 4}).
					Return(&model.UserEntity{ID: 4, Role: tt.role}, nil).
					Once()

				viewer, err := app.ResolveViewer(context.Background(), login.Token)
				if err != nil {
					t.Fatalf("ResolveViewer() error = %v", err)
				}
				if viewer.IsAdmin() != tt.wantAdmin {
					t.Fatalf("ResolveViewer() = %+v, want admin=%v", viewer, tt.wantAdmin)
				}
				if viewer.UserID != 4 {
					t.Fatalf("ResolveViewer() user id = %d, want 4", viewer.UserID)
				}
			})
		}
	})
}
