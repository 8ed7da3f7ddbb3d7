package middleware

import (
	"bytes"
	"io"

	"payment-orchestrator/internal/core/domain"
	"payment-orchestrator/internal/core/ports"
	"payment-orchestrator/pkg/apperror"
	"payment-orchestrator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WebhookAuth creates a middleware that verifies HMAC-SHA256 signatures on
// inbound provider webhooks. The :gateway route param selects which
// gateway's secret verifies the body. Sandbox gateways without a stored
// secret skip verification.
func WebhookAuth(
	registry ports.GatewayRegistry,
	encSvc ports.EncryptionService,
	sigSvc ports.SignatureService,
	log zerolog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := domain.ProviderType(c.Param("gateway"))
		if !provider.IsRoutable() {
			response.Error(c, apperror.ErrNotFound("gateway"))
			c.Abort()
			return
		}

		cfg, err := registry.Get(c.Request.Context(), provider)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if cfg.WebhookSecretEnc == "" {
			if cfg.IsSandbox {
				c.Set(CtxGateway, cfg)
				c.Next()
				return
			}
			log.Error().Str("gateway", string(provider)).Msg("gateway has no webhook secret configured")
			response.Error(c, apperror.ErrInvalidSignature())
			c.Abort()
			return
		}

		secret, err := encSvc.Decrypt(cfg.WebhookSecretEnc)
		if err != nil {
			log.Error().Err(err).Str("gateway", string(provider)).Msg("failed to decrypt webhook secret")
			response.Error(c, apperror.InternalError(err))
			c.Abort()
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Error(c, apperror.Validation("cannot read request body"))
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		signature := c.GetHeader(HeaderWebhookSignature)
		if signature == "" || !sigSvc.Verify(secret, string(bodyBytes), signature) {
			response.Error(c, apperror.ErrInvalidSignature())
			c.Abort()
			return
		}

		c.Set(CtxGateway, cfg)
		c.Next()
	}
}
