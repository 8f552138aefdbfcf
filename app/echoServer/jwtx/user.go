// app/echoServer/jwtx/user.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"bookstore/model"
)

// Claims read the verified token left in context by the JWT middleware.

func UserIDFromContext(c echo.Context) (int64, error) {
	claims, err := mapClaims(c)
	if err != nil {
		return 0, err
	}
	if f, ok := claims["sub"].(float64); ok {
		return int64(f), nil
	}
	return 0, errors.New("sub missing in claims")
}

func RolesFromContext(c echo.Context) (model.RoleList, error) {
	claims, err := mapClaims(c)
	if err != nil {
		return nil, err
	}
	raw, ok := claims["roles"].([]any)
	if !ok {
		return model.DefaultRoles(), nil
	}
	ss := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ss = append(ss, s)
		}
	}
	roles, err := model.ParseRoles(ss)
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func mapClaims(c echo.Context) (jwt.MapClaims, error) {
	switch v := c.Get("user").(type) {
	case *jwt.Token:
		if claims, ok := v.Claims.(jwt.MapClaims); ok {
			return claims, nil
		}
		return nil, errors.New("invalid jwt claims")
	case jwt.MapClaims:
		return v, nil
	}
	return nil, errors.New("no jwt token in context")
}
