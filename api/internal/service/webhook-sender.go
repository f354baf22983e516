package service

import (
	"bytes"
	"context"
	"fmt"
	"gateway/api/internal/domain"
	"gateway/api/internal/logger"
	"gateway/pkg/rr"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/proxy"
)

const maxResponseBody = 4 << 10 // stored on the attempt row, keep it bounded

type WebhookSenderService struct {
	rr      rr.RoundRobin
	list    *atomic.Pointer[[]string]
	timeout time.Duration
	l       logger.Logger
}

func NewWebhookSenderService(proxyList []string, timeout time.Duration, l logger.Logger) *WebhookSenderService {
	var list atomic.Pointer[[]string]
	list.Store(&proxyList)

	return &WebhookSenderService{rr: rr.New(&list), list: &list, timeout: timeout, l: l}
}

type senderRoundTripper struct {
	r http.RoundTripper
}

func (rt senderRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	r.Header.Set("User-Agent", "gateway-webhook")
	return rt.r.RoundTrip(r)
}

// Send performs exactly one delivery try. A response of any code is a result;
// network errors and timeouts come back as an error.
func (s *WebhookSenderService) Send(url string, payload []byte) (*domain.DeliveryResult, error) {
	if stringProxy, ok := s.rr.Next(); ok {
		return s.sendWithProxy(url, stringProxy, payload)
	}
	return s.sendWithoutProxy(url, payload)
}

func (s *WebhookSenderService) sendWithoutProxy(url string, payload []byte) (*domain.DeliveryResult, error) {
	client := http.Client{
		Transport: senderRoundTripper{r: http.DefaultTransport},
		Timeout:   s.timeout,
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return readResult(resp)
}

func (s *WebhookSenderService) sendWithProxy(url string, stringProxy string, payload []byte) (*domain.DeliveryResult, error) {
	socks, err := s.parseProxy(stringProxy)
	if err != nil {
		return nil, fmt.Errorf("can't parse proxy: %w", err)
	}

	auth := proxy.Auth{
		User:     socks.User,
		Password: socks.Pass,
	}

	dialer, err := proxy.SOCKS5("tcp", socks.Ip+":"+socks.Port, &auth, proxy.Direct)
	if err != nil {
		return nil, err
	}

	dialContext := func(ctx context.Context, network, address string) (net.Conn, error) {
		return dialer.Dial(network, address)
	}

	transport := &http.Transport{
		DialContext:       dialContext,
		DisableKeepAlives: true,
	}

	client := &http.Client{
		Transport: senderRoundTripper{r: transport},
		Timeout:   s.timeout,
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return readResult(resp)
}

func readResult(resp *http.Response) (*domain.DeliveryResult, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, err
	}

	return &domain.DeliveryResult{Code: resp.StatusCode, Body: string(body)}, nil
}

type ParsedProxy struct {
	User string `validate:"required,gte=2"`
	Pass string `validate:"required,gte=2"`
	Ip   string `validate:"required,gte=2"`
	Port string `validate:"required,gte=2"`
}

// login:password@ip:port
func (s *WebhookSenderService) parseProxy(str string) (ParsedProxy, error) {
	splitA := strings.Split(str, ":") // to [user pass@ip port]

	if len(splitA) != 3 {
		return ParsedProxy{}, fmt.Errorf("invalid proxy format: given: " + str)
	}

	splitB := strings.Split(splitA[1], "@") // to [pass ip]

	if len(splitB) != 2 {
		return ParsedProxy{}, fmt.Errorf("invalid proxy format: given: " + str)
	}

	pp := ParsedProxy{
		User: splitA[0],
		Pass: splitB[0],
		Ip:   splitB[1],
		Port: splitA[2],
	}

	validator := validator.New()
	if err := validator.Struct(pp); err != nil {
		return ParsedProxy{}, err
	}

	return pp, nil
}

func (s *WebhookSenderService) UpdateList(proxies []string) {
	var validProxies []string

	for _, proxy := range proxies {
		_, err := s.parseProxy(proxy)
		if err != nil {
			s.l.Debug("invalid proxy: " + proxy)
			continue
		}
		validProxies = append(validProxies, proxy)
	}

	s.list.Store(&validProxies)
}

func (s *WebhookSenderService) GetList() []string {
	listPtr := s.list.Load()
	if listPtr == nil {
		return []string{}
	}

	return *listPtr
}
