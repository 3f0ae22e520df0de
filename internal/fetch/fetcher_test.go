package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchExtractsHTMLText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><style>p{}</style></head><body>
<nav>menu</nav>
<h1>On Language</h1>
<p>First paragraph of the essay.</p>
<script>var x = 1;</script>
<p>Second paragraph.</p>
</body></html>`))
	}))
	defer srv.Close()

	lib := NewHTTPLibrary(srv.URL+"/s", srv.Client())
	text, err := lib.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Contains(t, text, "On Language")
	require.Contains(t, text, "First paragraph of the essay.")
	require.NotContains(t, text, "var x = 1")
	require.NotContains(t, text, "menu")
}

func TestFetchEmptyPageIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>only();</script></body></html>`))
	}))
	defer srv.Close()

	lib := NewHTTPLibrary(srv.URL+"/s", srv.Client())
	_, err := lib.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestSearchParsesEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "being and time", r.URL.Query().Get("searchStr"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
<li class="entry"><a href="https://example.org/a">Being and Time</a><span class="name">M. Heidegger</span></li>
<li class="entry"><a href="https://example.org/a">Being and Time (duplicate)</a></li>
<li class="entry"><a href="https://example.org/b">Being and Nothingness</a></li>
<li class="entry"><a href="">No link</a></li>
</body></html>`))
	}))
	defer srv.Close()

	lib := NewHTTPLibrary(srv.URL+"/s", srv.Client())
	candidates, err := lib.Search(context.Background(), "being and time")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	require.Equal(t, "Being and Time", candidates[0].Title)
	require.Equal(t, "M. Heidegger", candidates[0].Author)
	require.Equal(t, "https://example.org/b", candidates[1].URL)
}

func TestSearchEscapesReservedQueryCharacters(t *testing.T) {
	term := "being & time = care? #4"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, term, r.URL.Query().Get("searchStr"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body></body></html>`))
	}))
	defer srv.Close()

	lib := NewHTTPLibrary(srv.URL+"/s", srv.Client())
	candidates, err := lib.Search(context.Background(), term)
	require.NoError(t, err)
	require.Empty(t, candidates)
}

func TestMockLibraryDeterministic(t *testing.T) {
	lib := NewMockLibrary()
	a, err := lib.Search(context.Background(), "speech acts")
	require.NoError(t, err)
	b, _ := lib.Search(context.Background(), "speech acts")
	require.Equal(t, a, b)
	require.Len(t, a, 2)

	text, err := lib.Fetch(context.Background(), a[0].URL)
	require.NoError(t, err)
	require.NotEmpty(t, text)
}
