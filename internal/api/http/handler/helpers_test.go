package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gorilla/mux"

	httpContext "github.com/dtroode/fuelsupply-server/internal/api/http/context"
	"github.com/dtroode/fuelsupply-server/internal/model"
)

var contextManager = httpContext.NewManager()

func newRequest(method, target, body string, identity *model.Identity, vars map[string]string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := context.Background()
	if identity != nil {
		ctx = contextManager.SetIdentityToContext(ctx, *identity)
	}
	r = r.WithContext(ctx)
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}
