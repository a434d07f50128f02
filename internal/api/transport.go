package api

import (
	"context"
	"errors"
	"time"
	"warzone-tracker/internal/constants"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Transport is the HTTP client shared by the authentication handler and the
// match client, so both reuse one connection pool.
type Transport struct {
	client *fasthttp.Client
	logger zerolog.Logger
}

type exchange struct {
	method      string
	url         string
	headers     map[string]string
	cookies     map[string]string
	contentType string
	body        []byte
	// response cookies to capture
	wantCookies []string
}

type reply struct {
	status  int
	body    []byte
	cookies map[string]string
}

type roundTripResult struct {
	reply *reply
	err   error
}

func NewTransport(logger zerolog.Logger) *Transport {
	return &Transport{
		client: &fasthttp.Client{
			MaxConnsPerHost:     constants.HTTPMaxConnsPerHost,
			ReadTimeout:         constants.HTTPReadTimeout,
			WriteTimeout:        constants.HTTPWriteTimeout,
			MaxIdleConnDuration: constants.HTTPMaxIdleConnDuration,
		},
		logger: logger,
	}
}

// Do performs the exchange and returns as soon as either the response
// arrives or ctx is done. fasthttp has no context support, so the round
// trip runs on its own goroutine which owns the pooled request/response.
func (t *Transport) Do(ctx context.Context, ex exchange) (*reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan roundTripResult, 1)
	start := time.Now()
	go func() {
		rep, err := t.roundTrip(ctx, ex)
		done <- roundTripResult{reply: rep, err: err}
	}()

	select {
	case res := <-done:
		// a reply that races cancellation is discarded
		if err := ctx.Err(); err != nil {
			t.logger.Debug().Str("method", ex.method).Str("url", ex.url).Msg("upstream reply dropped after cancellation")
			return nil, err
		}
		if res.err != nil {
			// DoDeadline may fire just ahead of the context timer
			if deadline, ok := ctx.Deadline(); ok && errors.Is(res.err, fasthttp.ErrTimeout) && !time.Now().Before(deadline) {
				return nil, context.DeadlineExceeded
			}
		}
		if res.err == nil {
			t.logger.Debug().
				Str("method", ex.method).
				Str("url", ex.url).
				Int("status", res.reply.status).
				Dur("duration", time.Since(start)).
				Msg("upstream request completed")
		}
		return res.reply, res.err
	case <-ctx.Done():
		t.logger.Debug().Str("method", ex.method).Str("url", ex.url).Msg("upstream request abandoned")
		return nil, ctx.Err()
	}
}

func (t *Transport) roundTrip(ctx context.Context, ex exchange) (*reply, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(ex.url)
	req.Header.SetMethod(ex.method)
	for k, v := range ex.headers {
		req.Header.Set(k, v)
	}
	for k, v := range ex.cookies {
		req.Header.SetCookie(k, v)
	}
	if len(ex.body) > 0 {
		req.Header.SetContentType(ex.contentType)
		req.SetBody(ex.body)
	}

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = t.client.DoDeadline(req, resp, deadline)
	} else {
		err = t.client.Do(req, resp)
	}
	if err != nil {
		return nil, err
	}

	rep := &reply{
		status:  resp.StatusCode(),
		body:    append([]byte(nil), resp.Body()...),
		cookies: make(map[string]string, len(ex.wantCookies)),
	}

	for _, name := range ex.wantCookies {
		c := fasthttp.AcquireCookie()
		c.SetKey(name)
		if resp.Header.Cookie(c) && len(c.Value()) > 0 {
			rep.cookies[name] = string(c.Value())
		}
		fasthttp.ReleaseCookie(c)
	}

	return rep, nil
}
