package server

import (
	"fmt"
	"net/http"
	"net/url"

	"expense-services/internal/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// NewGateway reverse-proxies /auth, /data and /analytics to the services.
// /auth/* lands on the auth service's /api/*; the other prefixes are
// stripped.
func NewGateway(cfg *config.Config, deps *Dependencies) (*echo.Echo, error) {
	deps.defaults()
	e := newEcho(cfg, deps, serviceGateway)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API Gateway is running")
	})

	routes := []struct {
		prefix  string
		target  string
		rewrite string
	}{
		{"/auth", cfg.Gateway.AuthServiceURL, "/api/$1"},
		{"/data", cfg.Gateway.DataServiceURL, "/$1"},
		{"/analytics", cfg.Gateway.AnalyticsServiceURL, "/$1"},
	}

	for _, r := range routes {
		proxy, err := newProxy(r.target, map[string]string{r.prefix + "/*": r.rewrite})
		if err != nil {
			return nil, fmt.Errorf("gateway route %s: %w", r.prefix, err)
		}
		e.Group(r.prefix, proxy)
		deps.Logger.Info("gateway route registered", "prefix", r.prefix, "target", r.target)
	}

	return e, nil
}

func newProxy(target string, rewrite map[string]string) (echo.MiddlewareFunc, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid upstream url %q", target)
	}

	balancer := echomw.NewRoundRobinBalancer([]*echomw.ProxyTarget{{Name: u.Host, URL: u}})

	return echomw.ProxyWithConfig(echomw.ProxyConfig{
		Balancer: balancer,
		Rewrite:  rewrite,
	}), nil
}
