package dict

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefineExtractsFirstDefinition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crane", r.URL.Path)
		_, _ = w.Write([]byte(`[{"meanings":[{"definitions":[{"definition":"A large wading bird."},{"definition":"A lifting machine."}]}]}]`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	assert.Equal(t, "A large wading bird.", c.Define(context.Background(), "CRANE"))
}

func TestDefineEmptyOnNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"No Definitions Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	assert.Equal(t, "", c.Define(context.Background(), "zzzzz"))
}

func TestDefineEmptyOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	assert.Equal(t, "", c.Define(context.Background(), "crane"))
}

func TestDefineEmptyOnEmptyMeanings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"meanings":[]}]`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	assert.Equal(t, "", c.Define(context.Background(), "crane"))
}
