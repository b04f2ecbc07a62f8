package nakama

import (
	"encoding/base64"
	"encoding/json"
	"testing"
)

func TestExtractUserIDFromToken(t *testing.T) {
	claims, _ := json.Marshal(map[string]interface{}{"uid": "user-42"})
	token := "header." + base64.RawURLEncoding.EncodeToString(claims) + ".signature"

	uid, err := extractUserIDFromToken(token)
	if err != nil {
		t.Fatalf("extractUserIDFromToken() failed: %v", err)
	}
	if uid != "user-42" {
		t.Errorf("uid = %q, want user-42", uid)
	}

	if _, err := extractUserIDFromToken("not-a-jwt"); err == nil {
		t.Error("malformed token accepted")
	}
	noUID, _ := json.Marshal(map[string]interface{}{"exp": 123})
	if _, err := extractUserIDFromToken("h." + base64.RawURLEncoding.EncodeToString(noUID) + ".s"); err == nil {
		t.Error("token without uid accepted")
	}
}
