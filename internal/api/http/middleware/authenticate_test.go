package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpContext "github.com/dtroode/fuelsupply-server/internal/api/http/context"
	"github.com/dtroode/fuelsupply-server/internal/mocks"
	"github.com/dtroode/fuelsupply-server/internal/model"
	"github.com/dtroode/fuelsupply-server/internal/testutil"
)

const cookieName = "fs_session"

// echoIdentity writes the email from the context, or "anonymous".
func echoIdentity(cm model.ContextManager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := cm.GetIdentityFromContext(r.Context())
		if !ok {
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		_, _ = w.Write([]byte(identity.Email))
	})
}

func TestAuthenticate_Required(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		bearer     string
		cookie     string
		resolveCrd *model.Credential
		resolveErr error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no credentials",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid bearer",
			bearer:     "tok",
			resolveCrd: &model.Credential{Bearer: "tok"},
			wantStatus: http.StatusOK,
			wantBody:   "ana@example.com",
		},
		{
			name:       "valid cookie",
			cookie:     "sid",
			resolveCrd: &model.Credential{SessionID: "sid"},
			wantStatus: http.StatusOK,
			wantBody:   "ana@example.com",
		},
		{
			name:       "both presented",
			bearer:     "tok",
			cookie:     "sid",
			resolveCrd: &model.Credential{Bearer: "tok", SessionID: "sid"},
			wantStatus: http.StatusOK,
			wantBody:   "ana@example.com",
		},
		{
			name:       "rejected",
			bearer:     "bad",
			resolveCrd: &model.Credential{Bearer: "bad"},
			resolveErr: model.ErrUnauthenticated,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cm := httpContext.NewManager()
			resolver := mocks.NewIdentityService(t)
			if tt.resolveCrd != nil {
				resolver.On("Resolve", mock.Anything, *tt.resolveCrd).
					Return(model.Identity{Email: "ana@example.com"}, tt.resolveErr)
			}
			m := NewAuthenticate(resolver, cm, cookieName, testutil.MakeNoopLogger())

			r := httptest.NewRequest(http.MethodGet, "/api/access/me", nil)
			if tt.bearer != "" {
				r.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: cookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			m.Required(echoIdentity(cm)).ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAuthenticate_Optional(t *testing.T) {
	t.Parallel()

	cm := httpContext.NewManager()

	t.Run("anonymous", func(t *testing.T) {
		m := NewAuthenticate(mocks.NewIdentityService(t), cm, cookieName, testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		m.Optional(echoIdentity(cm)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contracts", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("resolved", func(t *testing.T) {
		resolver := mocks.NewIdentityService(t)
		resolver.On("Resolve", mock.Anything, model.Credential{Bearer: "tok"}).Return(model.Identity{Email: "ana@example.com"}, nil)
		m := NewAuthenticate(resolver, cm, cookieName, testutil.MakeNoopLogger())

		r := httptest.NewRequest(http.MethodPost, "/api/contracts", nil)
		r.Header.Set("Authorization", "Bearer tok")
		rec := httptest.NewRecorder()
		m.Optional(echoIdentity(cm)).ServeHTTP(rec, r)

		assert.Equal(t, "ana@example.com", rec.Body.String())
	})

	t.Run("expired session falls back to anonymous", func(t *testing.T) {
		resolver := mocks.NewIdentityService(t)
		resolver.On("Resolve", mock.Anything, model.Credential{SessionID: "old"}).Return(model.Identity{}, model.ErrUnauthenticated)
		m := NewAuthenticate(resolver, cm, cookieName, testutil.MakeNoopLogger())

		r := httptest.NewRequest(http.MethodPost, "/api/contracts", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: "old"})
		rec := httptest.NewRecorder()
		m.Optional(echoIdentity(cm)).ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
	})
}

func TestRequireAdmin_Handle(t *testing.T) {
	t.Parallel()

	cm := httpContext.NewManager()

	tests := []struct {
		name       string
		identity   *model.Identity
		gateErr    error
		wantStatus int
	}{
		{name: "no identity", wantStatus: http.StatusUnauthorized},
		{name: "admin", identity: &model.Identity{Email: "admin@example.com"}, wantStatus: http.StatusOK},
		{name: "customer", identity: &model.Identity{Email: "ana@example.com"}, gateErr: model.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "blocked admin", identity: &model.Identity{Email: "eve@example.com"}, gateErr: model.ErrBlocked, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gate := mocks.NewAdminGate(t)
			r := httptest.NewRequest(http.MethodGet, "/api/admin/access", nil)
			if tt.identity != nil {
				gate.On("RequireAdmin", mock.Anything, tt.identity.Email).Return(tt.gateErr)
				r = r.WithContext(cm.SetIdentityToContext(r.Context(), *tt.identity))
			}

			rec := httptest.NewRecorder()
			NewRequireAdmin(gate, cm).Handle(echoIdentity(cm)).ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
