package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mediavault/internal/domain/model"
	"mediavault/internal/presentation"
)

// PrincipalMiddleware resolves the authenticated principal from the
// trusted headers the upstream auth layer sets. Session handling and
// login live outside this service; a request without the headers is
// simply unauthenticated.
func PrincipalMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			principal, err := principalFromHeaders(ctx)
			if err != nil {
				return ctx.String(http.StatusUnauthorized, err.Error())
			}

			ctx.Set(presentation.PrincipalKey, principal)

			return next(ctx)
		}
	}
}

func principalFromHeaders(ctx echo.Context) (model.Principal, error) {
	header := ctx.Request().Header

	provider := header.Get(presentation.ProviderHeader)
	rawID := header.Get(presentation.UserIDHeader)
	if provider == "" || rawID == "" {
		return model.Principal{}, fmt.Errorf("missing authentication headers")
	}

	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return model.Principal{}, fmt.Errorf("invalid %s header", presentation.UserIDHeader)
	}

	return model.Principal{
		Provider: provider,
		ID:       id,
		Name:     header.Get(presentation.UsernameHeader),
	}, nil
}

// Principal returns the principal stored by PrincipalMiddleware.
func Principal(ctx echo.Context) model.Principal {
	principal, _ := ctx.Get(presentation.PrincipalKey).(model.Principal)

	return principal
}
