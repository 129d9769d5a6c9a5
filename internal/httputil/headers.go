package httputil

import "net/http"

// DefaultUserAgent is sent when a request sets none.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36"

// Headers builds an http.Header from name/value pairs. A trailing name
// without a value is ignored.
func Headers(pairs ...string) http.Header {
	h := make(http.Header, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}
	return h
}

// CookieString joins the name=value part of every Set-Cookie header of h
// with "; ". It returns "" when h carries no cookies.
func CookieString(h http.Header) string {
	resp := http.Response{Header: h}
	var out string
	for _, c := range resp.Cookies() {
		if out != "" {
			out += "; "
		}
		out += c.Name + "=" + c.Value
	}
	return out
}
