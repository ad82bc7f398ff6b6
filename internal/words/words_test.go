package words

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"word":"crane"},{"word":"slate"},{"word":"toolong"},{"word":"ab1de"}]`))
	}))
	defer srv.Close()

	lex := Load(context.Background(), srv.URL, "")
	require.False(t, lex.Degraded())
	assert.Equal(t, 2, lex.Size())
	assert.True(t, lex.IsValid("CRANE"))
	assert.True(t, lex.IsValid("slate"))
	assert.False(t, lex.IsValid("TOOLONG"))
	assert.False(t, lex.IsValid("AB1DE"))
}

func TestLoadFromFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("crane\nslate\n\nnope1\n"), 0o644))

	lex := Load(context.Background(), "", path)
	require.False(t, lex.Degraded())
	assert.Equal(t, 2, lex.Size())
	assert.True(t, lex.IsValid("SLATE"))
}

func TestLoadDegradesOnFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	lex := Load(context.Background(), srv.URL, "")
	require.True(t, lex.Degraded())
	assert.Equal(t, 1, lex.Size())
	assert.True(t, lex.IsValid(SentinelWord))
	assert.Equal(t, SentinelWord, lex.PickTarget())
}

func TestLoadDegradesOnEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	lex := Load(context.Background(), srv.URL, "")
	assert.True(t, lex.Degraded())
}

func TestPickTargetIsFromList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"word":"crane"},{"word":"slate"},{"word":"shard"}]`))
	}))
	defer srv.Close()

	lex := Load(context.Background(), srv.URL, "")
	for i := 0; i < 20; i++ {
		assert.True(t, lex.IsValid(lex.PickTarget()))
	}
}
