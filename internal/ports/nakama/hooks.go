package nakama

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// welcomeBonusCoins is granted once to every newly created account.
const welcomeBonusCoins = 1000

// AfterAuthenticateDevice is triggered after an account is authenticated.
// New accounts get a starting balance so they can sit at a table immediately.
func AfterAuthenticateDevice(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, out *api.Session, in *api.AuthenticateDeviceRequest) error {
	if !out.Created {
		return nil
	}

	userID := ""
	if ctxUserID, ok := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); ok {
		userID = ctxUserID
	}
	if userID == "" {
		resolvedID, err := extractUserIDFromToken(out.Token)
		if err != nil {
			logger.Error("AfterAuthenticateDevice: failed to extract user ID from token: %v", err)
			return err
		}
		userID = resolvedID
	}

	logger.Info("AfterAuthenticateDevice: onboarding new user %s", userID)

	// Seed a readable display name; clients may change it later.
	displayName := "Player-" + userID
	if len(userID) >= 6 {
		displayName = "Player-" + userID[:6]
	}
	account := NewNakamaAccountAdapter(nk)
	if err := account.UpdateProfile(ctx, userID, "", displayName); err != nil {
		logger.Warn("AfterAuthenticateDevice: failed to set display name for user %s: %v", userID, err)
	}

	bonus := NewNakamaWelcomeBonusAdapter(nk)
	granted, err := bonus.GrantWelcomeBonusOnce(ctx, userID, welcomeBonusCoins, map[string]interface{}{
		"reason": "welcome_bonus",
	})
	if err != nil {
		logger.Error("AfterAuthenticateDevice: welcome bonus failed for user %s: %v", userID, err)
		return err
	}
	if !granted {
		logger.Info("AfterAuthenticateDevice: welcome bonus already granted for user %s", userID)
	}
	return nil
}

func extractUserIDFromToken(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid token format")
	}

	payload := parts[1]
	// JWT base64 is RawUrlEncoding (no padding)
	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode token payload: %w", err)
	}

	var claims map[string]interface{}
	if err := json.Unmarshal(data, &claims); err != nil {
		return "", fmt.Errorf("failed to unmarshal token claims: %w", err)
	}

	uid, ok := claims["uid"].(string)
	if !ok {
		return "", fmt.Errorf("token claims missing uid")
	}

	return uid, nil
}
