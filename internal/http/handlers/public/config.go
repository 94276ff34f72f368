package public

import (
	"time"

	"github.com/grocer-next/internal/cache"
	"github.com/grocer-next/internal/constants"
	"github.com/grocer-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig returns the public storefront configuration.
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	captchaProvider := constants.CaptchaProviderNone
	captchaLogin := false
	if h.CaptchaService != nil && h.CaptchaService.Enabled(constants.CaptchaSceneLogin) {
		captchaProvider = constants.CaptchaProviderImage
		captchaLogin = true
	}

	data := map[string]interface{}{
		"captcha": map[string]interface{}{
			"provider": captchaProvider,
			"scenes": map[string]interface{}{
				"login": captchaLogin,
			},
		},
		"payment_methods": []string{
			constants.PaymentMethodCashOnDelivery,
			constants.PaymentMethodBankTransfer,
		},
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}
