package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/fuelsupply-server/internal/mocks"
	"github.com/dtroode/fuelsupply-server/internal/model"
	"github.com/dtroode/fuelsupply-server/internal/testutil"
)

var admin = &model.Identity{Email: "admin@example.com", Subject: "adm"}

func TestAccess_Me(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAccessService(t)
	svc.On("Classify", mock.Anything, "ana@example.com").Return(model.ClassificationAllowed, nil)
	h := NewAccess(svc, contextManager, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Me(rec, newRequest(http.MethodGet, "/api/access/me", "", &model.Identity{Email: "ana@example.com"}, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body classificationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, model.ClassificationAllowed, body.Classification)
}

func TestAccess_Me_Anonymous(t *testing.T) {
	t.Parallel()

	h := NewAccess(mocks.NewAccessService(t), contextManager, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Me(rec, newRequest(http.MethodGet, "/api/access/me", "", nil, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccess_Mutations(t *testing.T) {
	tests := []struct {
		name   string
		method string
		call   func(h *Access) http.HandlerFunc
		err    error
		status int
	}{
		{name: "approve", method: "Approve", call: func(h *Access) http.HandlerFunc { return h.Approve }, status: http.StatusOK},
		{name: "revoke", method: "Revoke", call: func(h *Access) http.HandlerFunc { return h.Revoke }, status: http.StatusOK},
		{name: "block", method: "Block", call: func(h *Access) http.HandlerFunc { return h.Block }, status: http.StatusOK},
		{name: "unblock", method: "Unblock", call: func(h *Access) http.HandlerFunc { return h.Unblock }, status: http.StatusOK},
		{name: "grant admin", method: "GrantAdmin", call: func(h *Access) http.HandlerFunc { return h.GrantAdmin }, status: http.StatusOK},
		{name: "revoke admin", method: "RevokeAdmin", call: func(h *Access) http.HandlerFunc { return h.RevokeAdmin }, status: http.StatusOK},
		{name: "approve forbidden", method: "Approve", call: func(h *Access) http.HandlerFunc { return h.Approve }, err: model.ErrForbidden, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := mocks.NewAccessService(t)
			svc.On(tt.method, mock.Anything, admin.Email, "ana@example.com").Return(tt.err)
			h := NewAccess(svc, contextManager, testutil.MakeNoopLogger())

			rec := httptest.NewRecorder()
			tt.call(h)(rec, newRequest(http.MethodPost, "/", `{"email":"ana@example.com"}`, admin, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.err == nil {
				assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
			}
		})
	}
}

func TestAccess_Mutation_BadBody(t *testing.T) {
	t.Parallel()

	h := NewAccess(mocks.NewAccessService(t), contextManager, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Approve(rec, newRequest(http.MethodPost, "/", `not json`, admin, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccess_List(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := mocks.NewAccessService(t)
	svc.On("List", mock.Anything, admin.Email).Return([]model.AccessEntry{
		{Email: "ana@example.com", Allowed: true, ApprovedBy: admin.Email, UpdatedAt: at},
		{Email: "eve@example.com", Blocked: true, UpdatedAt: at},
	}, nil)
	h := NewAccess(svc, contextManager, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/api/admin/access", "", admin, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []accessEntryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.True(t, body[0].Allowed)
	assert.Equal(t, admin.Email, body[0].ApprovedBy)
	assert.True(t, body[1].Blocked)
}
