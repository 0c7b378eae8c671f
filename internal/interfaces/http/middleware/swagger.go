package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ikada/backend/internal/interfaces/http/dto"
)

// SwaggerConfig controls access to the swagger UI
type SwaggerConfig struct {
	// Enabled exposes the swagger UI at all
	Enabled bool
	// AllowedIPs restricts access to these IPs or CIDRs, empty allows all
	AllowedIPs []string
	// Username and Password enable basic auth when both are set
	Username string
	Password string
}

// SwaggerProtection guards the swagger UI. Disabled entirely in
// production, otherwise optionally restricted by IP and basic auth.
func SwaggerProtection(cfg SwaggerConfig) gin.HandlerFunc {
	allowedNets := parseAllowedIPs(cfg.AllowedIPs)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, "Not found", GetRequestID(c)))
			return
		}

		if len(allowedNets) > 0 && !ipAllowed(c.ClientIP(), allowedNets) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Access denied", GetRequestID(c)))
			return
		}

		if cfg.Username != "" && cfg.Password != "" {
			user, pass, ok := c.Request.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Username)) != 1 ||
				subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.Password)) != 1 {
				c.Header("WWW-Authenticate", `Basic realm="swagger"`)
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
		}

		c.Next()
	}
}

func parseAllowedIPs(entries []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil {
				bits := 32
				if ip.To4() == nil {
					bits = 128
				}
				nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			}
			continue
		}
		if _, ipNet, err := net.ParseCIDR(entry); err == nil {
			nets = append(nets, ipNet)
		}
	}
	return nets
}

func ipAllowed(clientIP string, nets []*net.IPNet) bool {
	ip := net.ParseIP(clientIP)
	if ip == nil {
		return false
	}
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
