package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"usergrid/internal/cache"
	"usergrid/internal/config"
	"usergrid/internal/format"
	"usergrid/internal/gql"
	"usergrid/internal/logging"
)

// loadConfig reads the config file and applies flag overrides on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		c.API.Endpoint = endpoint
	}
	if flags.Changed("locale") {
		c.UI.Locale = locale
	}
	if flags.Changed("max-len") {
		c.UI.MaxCellLength = maxLen
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// newFormatter builds the value formatter from the UI settings.
func newFormatter(c *config.Config) (*format.Formatter, error) {
	tag, err := format.ParseLocale(c.UI.Locale)
	if err != nil {
		return nil, err
	}
	opts := []format.Option{
		format.WithLocale(tag),
		format.WithLocation(c.UI.GetLocation()),
	}
	if c.UI.MaxCellLength > 0 {
		opts = append(opts, format.WithMaxLen(c.UI.MaxCellLength))
	}
	return format.NewFormatter(opts...), nil
}

// newClient builds the GraphQL client and its response cache. The returned
// func releases the cache backend.
func newClient(c *config.Config) (*gql.Client, func(), error) {
	store, err := cache.New(cache.Options{
		Backend:   c.Cache.Backend,
		RedisAddr: c.Cache.RedisAddr,
		RedisPass: c.Cache.RedisPass,
		RedisDB:   c.Cache.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	logging.Get(logging.CategoryCache).Debug("response cache ready",
		zap.String("backend", c.Cache.Backend),
		zap.Duration("ttl", c.GetCacheTTL()))

	opts := []gql.Option{
		gql.WithTimeout(c.GetTimeout()),
		gql.WithLogger(logging.Get(logging.CategoryAPI)),
	}
	if store != nil {
		opts = append(opts, gql.WithCache(store, c.GetCacheTTL()))
	}
	for k, v := range c.Headers() {
		opts = append(opts, gql.WithHeader(k, v))
	}

	client, err := gql.New(c.API.Endpoint, opts...)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if cl, ok := store.(io.Closer); ok {
			_ = cl.Close()
		}
	}
	return client, closeFn, nil
}
