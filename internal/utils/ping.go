package utils

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/localnerve/shopdb/internal/config"
)

// PingService checks if a service is reachable at the given URL
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()

	// Default ports if not specified
	if port == "" {
		port = config.DefaultPort(parsedURL.Scheme)
		if port == "" {
			port = "80"
		}
	}

	address := net.JoinHostPort(host, port)

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	defer conn.Close()

	return nil
}

// DatabaseAddress returns a dialable URL for a networked database built from
// its parts, or "" for sqlite and for connection-string configurations.
func DatabaseAddress(cfg *config.Config) string {
	if cfg.DBType == "sqlite" || cfg.DBConnectionString != "" || cfg.DBHost == "" {
		return ""
	}
	return (&url.URL{Scheme: cfg.DBType, Host: net.JoinHostPort(cfg.DBHost, cfg.DBPort)}).String()
}
