package auth

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func TestAllowAllGrantsAccess(t *testing.T) {
	is := is.New(t)

	a, err := NewAuthenticator(context.Background(), bytes.NewBufferString(AllowAll))
	is.NoErr(err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attribute-tables", nil)
	is.NoErr(a.CheckAccess(context.Background(), req))
}

func TestTokenPolicy(t *testing.T) {
	is := is.New(t)

	a, err := NewAuthenticator(context.Background(), bytes.NewBufferString(tokenPolicy))
	is.NoErr(err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attribute-tables", nil)
	is.True(a.CheckAccess(context.Background(), req) != nil) // missing token should be denied

	req.Header.Set("Authorization", "Bearer letmein")
	is.NoErr(a.CheckAccess(context.Background(), req))
}

func TestInvalidPolicyFails(t *testing.T) {
	is := is.New(t)

	_, err := NewAuthenticator(context.Background(), bytes.NewBufferString("this is not rego"))
	is.True(err != nil) // should fail to compile
}

const tokenPolicy string = `
package example.authz

default allow := false

allow = response {
    input.method == "POST"
    input.path[0] == "api"
    input.token == "letmein"
    response := {}
}
`
