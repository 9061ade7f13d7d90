package bloom

import "testing"

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != "127.0.0.1:8080" {
		t.Fatalf("host = %q, want 127.0.0.1:8080", u.Host)
	}

	u, err = parseBaseURL("https://bloom.example.com/v1?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestMultipartBody_WrapsJSONInDataField(t *testing.T) {
	body, err := multipartBody(DoneItemPatch{Title: "a"})
	if err != nil {
		t.Fatalf("multipartBody returned error: %v", err)
	}
	if body.contentType == "" || len(body.data) == 0 {
		t.Fatalf("multipartBody = %#v, want content type and data", body)
	}
}
