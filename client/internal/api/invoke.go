package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	apierrors "github.com/rosette-api/rosette-go/client/internal/errors"
	"github.com/rosette-api/rosette-go/client/internal/types"
)

// Prepare validates params against d and snapshots them. No I/O happens here.
func Prepare(d types.Descriptor, params *types.Parameters) (Request, error) {
	if err := types.Validate(d, params); err != nil {
		return Request{}, err
	}
	req := Request{Descriptor: d}
	if d.HasBody() {
		payload, err := params.Payload()
		if err != nil {
			return Request{}, &apierrors.ValidationError{Operation: string(d.Name), Cause: err}
		}
		req.Payload = payload
	}
	return req, nil
}

// Invoke validates params and performs the call.
func (inv *Invoker) Invoke(ctx context.Context, d types.Descriptor, params *types.Parameters) (*types.Response, error) {
	req, err := Prepare(d, params)
	if err != nil {
		return nil, err
	}
	return inv.Send(ctx, req)
}

// Send performs a prepared call, retrying recoverable failures when the
// retry policy allows more than one attempt.
func (inv *Invoker) Send(ctx context.Context, req Request) (*types.Response, error) {
	op := string(req.Descriptor.Name)
	if err := ctx.Err(); err != nil {
		return nil, apierrors.NewTransportError(op, err)
	}

	attempts := inv.Retry.attempts()
	if attempts == 1 {
		return inv.sendOnce(ctx, req)
	}

	exp := backoff.NewExponentialBackOff()
	if inv.Retry.InitialInterval > 0 {
		exp.InitialInterval = inv.Retry.InitialInterval
	}
	if inv.Retry.MaxInterval > 0 {
		exp.MaxInterval = inv.Retry.MaxInterval
	}
	exp.MaxElapsedTime = 0 // bounded by attempts and ctx instead
	exp.Reset()
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)

	var resp *types.Response
	err := backoff.RetryNotify(func() error {
		r, err := inv.sendOnce(ctx, req)
		if err != nil {
			if apierrors.IsIrrecoverable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		resp = r
		return nil
	}, policy, func(err error, wait time.Duration) {
		log.Debug().Err(err).Str("operation", op).Dur("wait", wait).Msg("retrying request")
	})
	if err != nil {
		return nil, classify(op, err)
	}
	return resp, nil
}

// classify makes sure errors escaping the retry loop (for instance the bare
// ctx.Err() backoff returns while waiting) belong to the taxonomy.
func classify(op string, err error) error {
	var (
		te *apierrors.TransportError
		ae *apierrors.APIError
		ve *apierrors.ValidationError
	)
	if errors.As(err, &te) || errors.As(err, &ae) || errors.As(err, &ve) {
		return err
	}
	return apierrors.NewTransportError(op, err)
}

func (inv *Invoker) sendOnce(ctx context.Context, req Request) (*types.Response, error) {
	d := req.Descriptor
	op := string(d.Name)

	if inv.Limiter != nil {
		if err := inv.Limiter.Wait(ctx); err != nil {
			return nil, apierrors.NewTransportError(op, fmt.Errorf("rate limit wait: %w", err))
		}
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(inv.BaseURL, "/"), d.Path)
	r := inv.HTTP.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if d.HasBody() {
		r.SetHeader("Content-Type", "application/json").
			SetBody([]byte(req.Payload))
	}

	resp, err := r.Execute(d.Method, url)
	if err != nil {
		return nil, apierrors.NewTransportError(op, err)
	}

	body := resp.Body()
	if resp.StatusCode() >= 400 {
		return nil, apierrors.NewAPIError(op, resp.StatusCode(), body)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, apierrors.NewTransportError(op, fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}

	out := &types.Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       json.RawMessage(body),
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &out.Data); err != nil {
			return nil, apierrors.NewTransportError(op, fmt.Errorf("decode response: %w", err))
		}
	}
	return out, nil
}
