package middleware

import (
	"github.com/earthcare/network/internal/engine/consts"
	httpx "github.com/earthcare/network/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// UnifiedResponseMiddleware 统一响应拦截器
// c.Locals(consts.DETAIL, value) 用于设置响应数据
// 错误响应由 handler 直接写出，这里不覆盖
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			return err
		}

		// handler 已经写出了响应体（错误路径或自定义输出）
		if len(c.Response().Body()) > 0 {
			return nil
		}

		if c.Response().StatusCode() >= fiber.StatusOK && c.Response().StatusCode() < fiber.StatusMultipleChoices {
			if detail := c.Locals(consts.DETAIL); detail != nil {
				return httpx.WithRepJSON(c, detail)
			}

			// 业务逻辑正确, 无响应数据, 只返回结果
			if c.Locals(consts.OPERATION) != nil {
				return httpx.WithRepNotDetail(c)
			}
		}

		return nil
	}
}
