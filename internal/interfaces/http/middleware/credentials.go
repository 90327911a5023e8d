package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"echoverse-api/internal/config"
	"echoverse-api/internal/interfaces/http/dto"
	"echoverse-api/pkg/errors"
	"echoverse-api/pkg/logger"
)

// RequireCredentials 所需外部服务凭据未配置时返回 503
func RequireCredentials(cfg *config.Config, features ...config.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		var missing []string
		for _, f := range features {
			missing = append(missing, cfg.MissingCredentials(f)...)
		}
		if len(missing) > 0 {
			logger.Warn(c.Request.Context(), "request rejected: credentials not configured",
				"path", c.FullPath(),
				"missing", missing,
			)
			dto.AbortWithAppError(c, errors.ErrCredentialMissing.WithDetail(strings.Join(dedupe(missing), ", ")))
			return
		}
		c.Next()
	}
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
