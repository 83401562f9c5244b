/*
 * @Date: 2025-06-15 13:40:02
 * @Description: JWT认证中间件
 */
package middleware

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"

	"whoisgate/pkg/logger"
	"whoisgate/utils"
)

const tokenExpiration = 30 * time.Second

// Claims 短时效令牌，绑定IP并携带一次性nonce
type Claims struct {
	jwt.RegisteredClaims
	Nonce string `json:"nonce"`
	IP    string `json:"ip"`
}

// normalizeIP 规范化IP地址，统一IPv4和IPv4映射的IPv6表示
func normalizeIP(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	parsed := net.ParseIP(trimmed)
	if parsed == nil {
		return trimmed
	}
	if v4 := parsed.To4(); v4 != nil {
		return v4.String()
	}
	return parsed.String()
}

// AuthRequired 验证Bearer令牌：签名、IP绑定、nonce一次性
func AuthRequired(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.WithRequest(c, "Auth")

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			utils.ErrorResponse(c, 401, "MISSING_TOKEN", "missing authorization header")
			c.Abort()
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			utils.ErrorResponse(c, 401, "INVALID_TOKEN", "invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			utils.ErrorResponse(c, 401, "INVALID_TOKEN", "empty token")
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil {
			log.Infow("token validation failed", "err", err)
			utils.ErrorResponse(c, 401, "INVALID_TOKEN", "invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok || !token.Valid {
			utils.ErrorResponse(c, 401, "INVALID_TOKEN", "invalid token claims")
			c.Abort()
			return
		}

		// 令牌只能从签发时的IP使用，防止跨网络重放
		requestIP := normalizeIP(c.ClientIP())
		tokenIP := normalizeIP(claims.IP)
		if requestIP == "" || tokenIP == "" || requestIP != tokenIP {
			log.Infow("token ip mismatch", "token_ip", claims.IP, "request_ip", c.ClientIP())
			utils.ErrorResponse(c, 401, "IP_BINDING_FAILED", "token ip mismatch")
			c.Abort()
			return
		}

		// nonce只允许使用一次
		nonceKey := fmt.Sprintf("nonce:%s", claims.Nonce)
		if exists, _ := rdb.Exists(c, nonceKey).Result(); exists == 1 {
			utils.ErrorResponse(c, 401, "TOKEN_REUSED", "token already used")
			c.Abort()
			return
		}
		rdb.Set(c, nonceKey, true, tokenExpiration)

		c.Next()
	}
}

// GenerateToken 签发临时令牌，按IP限制签发频率
func GenerateToken(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		key := fmt.Sprintf("token:ip:%s", clientIP)
		count, _ := rdb.Incr(c, key).Result()
		rdb.Expire(c, key, time.Minute)

		if count > 30 { // 每分钟每IP最多30个令牌
			utils.ErrorResponse(c, 429, "TOO_MANY_REQUESTS", "token requests too frequent")
			return
		}

		now := time.Now()
		claims := Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiration)),
				IssuedAt:  jwt.NewNumericDate(now),
				Issuer:    "whoisgate",
			},
			Nonce: fmt.Sprintf("%d", now.UnixNano()),
			IP:    clientIP,
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			utils.ErrorResponse(c, 500, "TOKEN_GENERATION_FAILED", "failed to generate token")
			return
		}

		utils.SuccessResponse(c, gin.H{"token": signedToken}, nil)
	}
}
