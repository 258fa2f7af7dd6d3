package api

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
)

const ctxKeyGameMaster = "game_master"

// AdminMiddleware admits game masters holding a token signed with auth.secret,
// sent either as the secret_token cookie or as a bearer token.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		raw := bearerToken(ctx)
		if raw == "" {
			cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
			if err != nil {
				return constants.ErrUnauthorized
			}
			raw = cookie.Value
		}

		gameMaster, err := svc.authService.Verify(raw)
		if err != nil {
			return err
		}

		ctx.Set(ctxKeyGameMaster, gameMaster)
		req := ctx.Request()
		ctx.SetRequest(req.WithContext(logger.WithFields(req.Context(), ctxKeyGameMaster, gameMaster)))

		return next(ctx)
	}
}

func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// requestIDHandler puts the request id into the logging context.
func requestIDHandler(ctx echo.Context, id string) {
	req := ctx.Request()
	ctx.SetRequest(req.WithContext(logger.WithFields(req.Context(), constants.CtxKeyRequestID, id)))
}
