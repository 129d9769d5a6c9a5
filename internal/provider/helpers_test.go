package provider

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const testCreator = "tester"

var testNow = time.UnixMilli(1700000000000)

// newTestClient starts a TLS server for mux and points every endpoint at
// it. Each tweak may override the options before the client is built.
func newTestClient(t *testing.T, mux *http.ServeMux, tweaks ...func(*Options)) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewTLSServer(mux)
	t.Cleanup(srv.Close)

	opts := Options{
		Creator:    testCreator,
		HTTPClient: srv.Client(),
		Endpoints: Endpoints{
			SSSTik:       srv.URL + "/ssstik?url=dl",
			TikDown:      srv.URL + "/tikdown",
			FDown:        srv.URL + "/fdown",
			SnapInsta:    srv.URL + "/snapinsta",
			SnapAny:      srv.URL + "/snapany",
			YTConvert:    srv.URL + "/ytconvert",
			Ryin:         srv.URL + "/ryin/",
			SfileReferer: srv.URL + "/",
		},
		Now:  func() time.Time { return testNow },
		Intn: func(int) int { return 2 },
	}
	for _, tweak := range tweaks {
		tweak(&opts)
	}
	return New(opts), srv
}

// serveFile answers with a testdata fixture.
func serveFile(t *testing.T, filename string) http.HandlerFunc {
	t.Helper()
	data, err := os.ReadFile("testdata/" + filename)
	if err != nil {
		t.Fatalf("reading test fixture %s: %v", filename, err)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(data)
	}
}

func serveJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func serveStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(code), code)
	}
}

func loadTestDoc(t *testing.T, filename string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile("testdata/" + filename)
	if err != nil {
		t.Fatalf("reading test fixture %s: %v", filename, err)
	}
	return docFromString(t, string(data))
}

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc
}

// failed asserts a failure envelope with a non-empty message.
func failed(t *testing.T, ok bool, msg string) {
	t.Helper()
	if ok {
		t.Fatal("expected failure envelope, got success")
	}
	if msg == "" {
		t.Error("failure envelope has empty msg")
	}
}
