package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSfile(t *testing.T) {
	tests := []struct {
		name  string
		intn  int
		wantK string
	}{
		{"lowest k", 0, "10"},
		{"highest k", 5, "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /file/abc", func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Referer") == "" {
					t.Error("page request has no Referer")
				}
				serveFile(t, "sfile.html")(w, r)
			})
			var bound int
			c, srv := newTestClient(t, mux, func(o *Options) {
				o.Intn = func(n int) int {
					bound = n
					return tt.intn
				}
			})

			env := c.Sfile(context.Background(), srv.URL+"/file/abc")
			if !env.OK() {
				t.Fatalf("Sfile() failed: %s", env.Msg)
			}
			if bound != kMax-kMin+1 {
				t.Errorf("Intn bound = %d, want %d", bound, kMax-kMin+1)
			}
			res := env.Result
			if res.Filename != "Test File.zip" {
				t.Errorf("filename = %q", res.Filename)
			}
			if res.Mimetype != "ZIP Archive" {
				t.Errorf("mimetype = %q, want ZIP Archive", res.Mimetype)
			}
			if want := srv.URL + "/download/123?k=" + tt.wantK; res.Download != want {
				t.Errorf("download = %q, want %q", res.Download, want)
			}
		})
	}
}

func TestSfilePlainHTTPPage(t *testing.T) {
	c, _ := newTestClient(t, http.NewServeMux())

	plainMux := http.NewServeMux()
	plainMux.HandleFunc("GET /file/abc", serveFile(t, "sfile.html"))
	plain := httptest.NewServer(plainMux)
	defer plain.Close()

	env := c.Sfile(context.Background(), plain.URL+"/file/abc")
	if !env.OK() {
		t.Fatalf("Sfile() on an http page failed: %s", env.Msg)
	}
	if want := plain.URL + "/download/123?k=12"; env.Result.Download != want {
		t.Errorf("download = %q, want %q", env.Result.Download, want)
	}
}

func TestSfileMissingDownload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/file/gone", serveJSON(`<html><div class="list">File Size: 1 MB - PDF</div></html>`))
	c, srv := newTestClient(t, mux)

	env := c.Sfile(context.Background(), srv.URL+"/file/gone")
	failed(t, env.OK(), env.Msg)
	if env.Msg != ErrDownloadLink.Message {
		t.Errorf("msg = %q, want %q", env.Msg, ErrDownloadLink.Message)
	}
}

func TestParseMimetype(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`<div class="list">File Size: 2 MB - Android Package</div>`, "Android Package"},
		{`<div class="list">1 MB - PDF - extra</div>`, "PDF"},
		{`<div class="list">no separator</div>`, ""},
		{`<p>nothing</p>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			doc := docFromString(t, tt.body)
			if got := parseMimetype(doc.Selection); got != tt.want {
				t.Errorf("parseMimetype() = %q, want %q", got, tt.want)
			}
		})
	}
}
