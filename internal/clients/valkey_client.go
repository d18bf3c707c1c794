package clients

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spacesedan/notetaker/internal/models"
	"github.com/valkey-io/valkey-go"
)

const valkeyRetries = 3

var valkeyRetryWait = 250 * time.Millisecond

type ValkeyOptions struct {
	Addr     string
	Password string
	TLS      bool
}

// ValkeyClient caches classifier labels. It reconnects when the
// connection drops.
type ValkeyClient struct {
	Client valkey.Client
	opts   ValkeyOptions
	mu     sync.Mutex
}

func InitValkey(ctx context.Context, opts ValkeyOptions) (*ValkeyClient, error) {
	client, err := connectValkey(ctx, opts)
	if err != nil {
		return nil, err
	}
	slog.Info("[ValkeyClient] Successfully connected to valkey",
		slog.String("addr", opts.Addr))
	return &ValkeyClient{Client: client, opts: opts}, nil
}

func connectValkey(ctx context.Context, opts ValkeyOptions) (valkey.Client, error) {
	clientOpts := valkey.ClientOption{
		InitAddress: []string{
			opts.Addr,
		},
		Password:         opts.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if opts.TLS {
		clientOpts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey: %w", err)
	}
	return client, nil
}

func (vc *ValkeyClient) recreateClient(ctx context.Context) {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(ctx, vc.opts)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed",
			slog.String("error", err.Error()))
		return
	}
	vc.Client.Close()
	vc.Client = client
}

func (vc *ValkeyClient) Close() error {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.Client.Close()
	return nil
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func (vc *ValkeyClient) GetLabel(ctx context.Context, key string) (models.ClassifierLabel, bool) {
	var label models.ClassifierLabel

	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Get().Key(key).Build()
	}, valkeyRetries)
	raw, err := res.ToString()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ValkeyClient] Failed to read label",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return label, false
	}

	if err := json.Unmarshal([]byte(raw), &label); err != nil {
		slog.Warn("[ValkeyClient] Discarding malformed label",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return label, false
	}
	return label, true
}

// SetLabel stores label with an expiry in a single SET EX. TTLs under one
// second cannot be expressed in EX and are not cached.
func (vc *ValkeyClient) SetLabel(ctx context.Context, key string, label models.ClassifierLabel, ttl time.Duration) error {
	secs, ok := ttlSeconds(ttl)
	if !ok {
		slog.Debug("[ValkeyClient] TTL below one second, skipping cache write",
			slog.String("key", key),
			slog.Duration("ttl", ttl))
		return nil
	}

	body, err := json.Marshal(label)
	if err != nil {
		return fmt.Errorf("failed to marshal label: %w", err)
	}

	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Set().Key(key).Value(string(body)).ExSeconds(secs).Build()
	}, valkeyRetries)
	return res.Error()
}

func ttlSeconds(ttl time.Duration) (int64, bool) {
	secs := int64(ttl / time.Second)
	return secs, secs >= 1
}

// DoWithRetry builds a fresh command for every attempt; a completed command
// is recycled by the client after Do and must not be sent twice.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult

	_ = retryValkey(retries, valkeyRetryWait, func(attempt int) error {
		c := vc.client()
		result = c.Do(ctx, build(c))
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			return nil
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))
		if isConnectionError(err) {
			vc.recreateClient(ctx)
		}
		return err
	})

	return result
}

func retryValkey(retries int, wait time.Duration, attempt func(attempt int) error) error {
	var err error
	for i := 0; i < retries; i++ {
		if err = attempt(i); err == nil {
			return nil
		}
		if i < retries-1 {
			time.Sleep(wait)
		}
	}
	return err
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
