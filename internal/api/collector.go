package api

import (
	"context"
	"net"
	"net/http"

	apperrors "github.com/quantatel/quantatel-go/internal/errors"
)

// collectIPRequest is the POST /api/v1/collector/ip request body.
type collectIPRequest struct {
	IPAddress string `json:"ip_address"`
}

// collectBulkIPRequest is the POST /api/v1/collector/bulk-ip request body.
type collectBulkIPRequest struct {
	IPAddresses []string `json:"ip_addresses"`
}

// CollectIP triggers ingestion of threat data for a single IP address.
func (c *Client) CollectIP(ctx context.Context, ip string) error {
	if net.ParseIP(ip) == nil {
		return apperrors.ValidationField("ip_address", "invalid IP address: "+ip)
	}
	return c.do(ctx, http.MethodPost, "/api/v1/collector/ip", nil, collectIPRequest{IPAddress: ip}, nil)
}

// CollectBulkIP triggers ingestion for a batch of IP addresses.
func (c *Client) CollectBulkIP(ctx context.Context, ips []string) error {
	if len(ips) == 0 {
		return apperrors.ValidationField("ip_addresses", "at least one IP address is required")
	}
	for _, ip := range ips {
		if net.ParseIP(ip) == nil {
			return apperrors.ValidationField("ip_addresses", "invalid IP address: "+ip)
		}
	}
	return c.do(
		ctx,
		http.MethodPost,
		"/api/v1/collector/bulk-ip",
		nil,
		collectBulkIPRequest{IPAddresses: ips},
		nil,
	)
}
