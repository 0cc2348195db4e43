package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/wander/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectOptions configures the client backing the response cache and how
// long startup waits for it.
type ConnectOptions struct {
	URL      string // redis:// URL; when set it replaces Addr, User, Password and RedisDB
	Addr     string
	User     string
	Password string
	RedisDB  int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int

	ConnectTimeout time.Duration // budget for the whole startup wait
	RetryInterval  time.Duration // first pause, doubled after each failure
	MaxWait        time.Duration // ceiling for the pause
	PingTimeout    time.Duration
	WarnThreshold  int // failures logged at warn level before switching to error
}

// urgentWindow is the remaining budget below which failed pings are logged
// as errors regardless of WarnThreshold.
const urgentWindow = 10 * time.Second

func validateOptions(opts ConnectOptions) error {
	var errs []error
	positive := []struct {
		name string
		d    time.Duration
	}{
		{"ConnectTimeout", opts.ConnectTimeout},
		{"RetryInterval", opts.RetryInterval},
		{"MaxWait", opts.MaxWait},
		{"PingTimeout", opts.PingTimeout},
	}
	for _, p := range positive {
		if p.d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", p.name, p.d))
		}
	}
	if opts.WarnThreshold < 0 {
		errs = append(errs, fmt.Errorf("WarnThreshold must be >= 0, got %d", opts.WarnThreshold))
	}
	return errors.Join(errs...)
}

// New returns a client once Redis answers a PING. It gives up when
// ConnectTimeout elapses so the caller can fall back to another cache.
func New(opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := validateOptions(opts); err != nil {
		log.Error("invalid cache connection options", logger.Error(err))
		return nil, err
	}

	clientOpts, err := clientOptions(opts)
	if err != nil {
		return nil, err
	}

	d := &dialer{
		client: redis.NewClient(clientOpts),
		addr:   clientOpts.Addr,
		opts:   opts,
		log:    log,
	}
	if err := d.await(context.Background()); err != nil {
		_ = d.client.Close()
		return nil, err
	}
	return d.client, nil
}

// clientOptions merges the connection target (URL or discrete fields) with
// the timeouts and pool size, which always come from opts.
func clientOptions(opts ConnectOptions) (*redis.Options, error) {
	o := &redis.Options{
		Addr:     opts.Addr,
		Username: opts.User,
		Password: opts.Password,
		DB:       opts.RedisDB,
	}
	if opts.URL != "" {
		parsed, err := redis.ParseURL(opts.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		o = parsed
	}
	if o.Addr == "" {
		return nil, errors.New("redis address is empty")
	}

	o.DialTimeout = opts.DialTimeout
	o.ReadTimeout = opts.ReadTimeout
	o.WriteTimeout = opts.WriteTimeout
	o.PoolSize = opts.PoolSize
	return o, nil
}

type backoff struct {
	next time.Duration
	max  time.Duration
}

// pause returns the current wait and doubles it for the following call.
func (b *backoff) pause() time.Duration {
	cur := b.next
	b.next *= 2
	if b.next > b.max {
		b.next = b.max
	}
	return cur
}

type dialer struct {
	client *redis.Client
	addr   string
	opts   ConnectOptions
	log    logger.Logger
}

func (d *dialer) await(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, d.opts.ConnectTimeout)
	defer cancel()

	d.log.Info("waiting for response cache",
		logger.String("addr", d.addr),
		logger.Duration("budget", d.opts.ConnectTimeout))
	start := time.Now()
	b := backoff{next: d.opts.RetryInterval, max: d.opts.MaxWait}

	for attempt := 1; ; attempt++ {
		err := d.ping(ctx)
		if err == nil {
			d.ready(attempt, time.Since(start))
			return nil
		}

		wait := b.pause()
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			d.log.Error("response cache unreachable, giving up",
				logger.String("addr", d.addr),
				logger.Int("attempts", attempt),
				logger.Duration("budget", d.opts.ConnectTimeout),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
				d.addr, attempt, d.opts.ConnectTimeout, err)
		case <-timer.C:
			d.failed(attempt, remaining(ctx), wait, err)
		}
	}
}

func (d *dialer) ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, d.opts.PingTimeout)
	defer cancel()
	return d.client.Ping(pingCtx).Err()
}

func (d *dialer) ready(attempts int, elapsed time.Duration) {
	if attempts == 1 {
		d.log.Info("response cache reachable", logger.String("addr", d.addr))
		return
	}
	d.log.Warn("response cache reachable after retries",
		logger.String("addr", d.addr),
		logger.Int("attempts", attempts),
		logger.Duration("elapsed", elapsed))
}

func (d *dialer) failed(attempt int, left, wait time.Duration, err error) {
	fields := []zap.Field{
		logger.String("addr", d.addr),
		logger.Int("attempt", attempt),
		logger.Duration("next_retry_in", wait),
		logger.Error(err),
	}
	switch {
	case left < urgentWindow:
		d.log.Error("response cache still down, budget nearly spent",
			append(fields, logger.Duration("remaining", left))...)
	case attempt <= d.opts.WarnThreshold:
		d.log.Warn("response cache ping failed, retrying", fields...)
	default:
		d.log.Error("response cache still down", fields...)
	}
}

func remaining(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline)
}
