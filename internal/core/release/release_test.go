package release

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kobaltcore/renutil/internal/core/version"
)

const listingHTML = `<html><body>
<h1>Index of /dl</h1>
<a href="../">../</a>
<a href="7.4.11/">7.4.11/</a>
<a href="7.4.2/">7.4.2/</a>
<a href="8.0.0/">8.0.0/</a>
<a href="lib/">lib/</a>
<a href="permalinks.txt">permalinks.txt</a>
</body></html>`

func newIndexServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/dl/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingHTML)
	})
	return httptest.NewServer(mux)
}

func TestFetchAvailable(t *testing.T) {
	srv := newIndexServer()
	defer srv.Close()

	client := NewClient(srv.URL + "/dl/")
	releases, err := client.FetchAvailable(context.Background())
	if err != nil {
		t.Fatalf("FetchAvailable failed: %v", err)
	}

	want := []string{"8.0.0", "7.4.11", "7.4.2"}
	if len(releases) != len(want) {
		t.Fatalf("got %d releases, want %d", len(releases), len(want))
	}
	for i, w := range want {
		if releases[i].Version.String() != w {
			t.Errorf("releases[%d] = %s, want %s", i, releases[i].Version, w)
		}
	}

	wantURL := srv.URL + "/dl/8.0.0/renpy-8.0.0-sdk.zip"
	if releases[0].URL != wantURL {
		t.Errorf("URL = %s, want %s", releases[0].URL, wantURL)
	}
}

func TestFetchAvailable_Offline(t *testing.T) {
	srv := newIndexServer()
	srv.Close() // connection refused

	client := NewClient(srv.URL + "/dl/")
	if _, err := client.FetchAvailable(context.Background()); err == nil {
		t.Error("FetchAvailable against closed server unexpectedly succeeded")
	}
}

func TestFetchAvailable_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := NewClient(srv.URL + "/dl/")
	if _, err := client.FetchAvailable(context.Background()); err == nil {
		t.Error("FetchAvailable with 404 listing unexpectedly succeeded")
	}
}

func TestArchiveURLs(t *testing.T) {
	client := NewClient("https://www.renpy.org/dl") // slash appended
	v := version.MustParse("7.4.11")

	if got := client.SDKURL(v); got != "https://www.renpy.org/dl/7.4.11/renpy-7.4.11-sdk.zip" {
		t.Errorf("SDKURL = %s", got)
	}
	if got := client.RAPTURL(v); got != "https://www.renpy.org/dl/7.4.11/renpy-7.4.11-rapt.zip" {
		t.Errorf("RAPTURL = %s", got)
	}
}
