package httpapi

import (
	"net/http"
	"strings"

	"github.com/MarkoPoloResearchLab/frontdesk/pkg/frontdesk"
	"github.com/gin-gonic/gin"
	"github.com/tyemirov/tauth/pkg/sessionvalidator"
)

const superAdminRoleClaim = "super_admin"

// actorResolver maps validated session claims onto a front-desk actor.
type actorResolver struct {
	superAdmins map[string]struct{}
}

func newActorResolver(superAdminIDs []string) actorResolver {
	superAdmins := make(map[string]struct{}, len(superAdminIDs))
	for _, userID := range superAdminIDs {
		trimmed := strings.TrimSpace(userID)
		if trimmed != "" {
			superAdmins[trimmed] = struct{}{}
		}
	}
	return actorResolver{superAdmins: superAdmins}
}

func (resolver actorResolver) resolve(claims *sessionvalidator.Claims) (frontdesk.Actor, error) {
	userID := strings.TrimSpace(claims.GetUserID())
	name := firstNonEmpty(claims.GetUserDisplayName(), claims.GetUserEmail(), userID)
	return frontdesk.NewActor(userID, name, resolver.role(userID, claims.GetUserRoles()))
}

func (resolver actorResolver) role(userID string, roles []string) frontdesk.Role {
	if _, ok := resolver.superAdmins[userID]; ok {
		return frontdesk.RoleSuperAdmin
	}
	for _, role := range roles {
		if strings.EqualFold(strings.TrimSpace(role), superAdminRoleClaim) {
			return frontdesk.RoleSuperAdmin
		}
	}
	return frontdesk.RoleAdmin
}

// requireActor runs after the session middleware and stores the actor for handlers.
func (handler *httpHandler) requireActor(ctx *gin.Context) {
	claims := getClaims(ctx)
	if claims == nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("unauthorized", "missing session"))
		return
	}
	actor, err := handler.actors.resolve(claims)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse("unauthorized", "invalid session subject"))
		return
	}
	ctx.Set(actorContextKey, actor)
	ctx.Next()
}

func getClaims(ctx *gin.Context) *sessionvalidator.Claims {
	claimsValue, ok := ctx.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := claimsValue.(*sessionvalidator.Claims)
	return claims
}

func getActor(ctx *gin.Context) frontdesk.Actor {
	actorValue, _ := ctx.Get(actorContextKey)
	actor, _ := actorValue.(frontdesk.Actor)
	return actor
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
