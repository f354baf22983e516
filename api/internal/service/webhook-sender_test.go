package service

import (
	"gateway/api/internal/logger"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestSender(timeout time.Duration) *WebhookSenderService {
	return NewWebhookSenderService(nil, timeout, logger.Logger{})
}

func TestSendSuccess(t *testing.T) {
	var gotAgent string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	s := newTestSender(5 * time.Second)

	res, err := s.Send(srv.URL, []byte(`{"payment_id":"p1"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsSuccess() {
		t.Fatalf("expected success, got code %d", res.Code)
	}
	if res.Body != "ok" {
		t.Fatalf("expected body 'ok', got %q", res.Body)
	}
	if gotAgent != "gateway-webhook" {
		t.Fatalf("expected gateway-webhook user agent, got %q", gotAgent)
	}
	if string(gotBody) != `{"payment_id":"p1"}` {
		t.Fatalf("unexpected payload: %s", gotBody)
	}
}

func TestSendNon2xxIsResultNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	s := newTestSender(5 * time.Second)

	res, err := s.Send(srv.URL, []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsSuccess() {
		t.Fatal("500 must not count as success")
	}
	if res.Code != 500 || res.Body != "boom" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSendTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	s := newTestSender(50 * time.Millisecond)

	res, err := s.Send(srv.URL, []byte(`{}`))
	if err == nil {
		t.Fatalf("expected timeout error, got result %+v", res)
	}
}

func TestSendTruncatesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, maxResponseBody*2))
	}))
	defer srv.Close()

	s := newTestSender(5 * time.Second)

	res, err := s.Send(srv.URL, []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Body) != maxResponseBody {
		t.Fatalf("expected %d bytes, got %d", maxResponseBody, len(res.Body))
	}
}

func TestParseProxy(t *testing.T) {
	s := newTestSender(time.Second)

	pp, err := s.parseProxy("login:password@144.11.22.33:8080")
	if err != nil {
		t.Fatal(err)
	}
	want := ParsedProxy{User: "login", Pass: "password", Ip: "144.11.22.33", Port: "8080"}
	if pp != want {
		t.Fatalf("expected %+v, got %+v", want, pp)
	}

	bad := []string{
		"",
		"login:password",
		"login@144.11.22.33:8080",
		"login:password@144.11.22.33",
		"a:b@c:d:e",
	}
	for _, str := range bad {
		if _, err := s.parseProxy(str); err == nil {
			t.Fatalf("expected error for %q", str)
		}
	}
}

func TestUpdateListDropsInvalid(t *testing.T) {
	s := newTestSender(time.Second)

	s.UpdateList([]string{
		"login:password@144.11.22.33:8080",
		"garbage",
		"user:pass@10.0.0.1:1080",
	})

	list := s.GetList()
	if len(list) != 2 {
		t.Fatalf("expected 2 valid proxies, got %d: %v", len(list), list)
	}
	if s.rr.Len() != 2 {
		t.Fatalf("round robin must see the swapped list, got len %d", s.rr.Len())
	}
}
