// Package controllers contains the HTTP handlers. Controllers bind and
// validate requests, delegate to the service layer, and translate
// service errors through middleware.HandleAPIError.
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauth "github.com/nurhakim/siakad/internal/app/auth"
	"github.com/nurhakim/siakad/internal/app/models"
	"github.com/nurhakim/siakad/internal/app/models/dto"
	"github.com/nurhakim/siakad/internal/middleware"
)

// mustCurrentUser returns the authenticated user or writes a 401. The
// auth middleware guarantees the user on guarded routes; the nil path
// only fires when a route is wired without JWTAuth.
func mustCurrentUser(ctx *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return user, true
}

// resolveScope resolves the caller's visibility scope, writing the
// error response on failure.
func resolveScope(ctx *gin.Context, resolver *appauth.ScopeResolver) (appauth.AccessScope, *models.User, bool) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return appauth.AccessScope{}, nil, false
	}
	scope, err := resolver.Resolve(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return appauth.AccessScope{}, nil, false
	}
	return scope, user, true
}

// browseScope resolves the caller's scope for read-only catalog
// endpoints. Management roles keep their resolved scope; mahasiswa and
// dosen browse unrestricted since the catalog is not sensitive.
func browseScope(ctx *gin.Context, resolver *appauth.ScopeResolver) (appauth.AccessScope, bool) {
	user, ok := mustCurrentUser(ctx)
	if !ok {
		return appauth.AccessScope{}, false
	}
	if !user.Role.IsManagement() {
		return appauth.AccessScope{Role: user.Role, Unrestricted: true}, true
	}
	scope, err := resolver.Resolve(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return appauth.AccessScope{}, false
	}
	return scope, true
}

// bindJSON binds the request body, writing the validation response on
// failure.
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}
