package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
		},
		"calcom": map[string]any{
			"apiKey":     "",
			"ownerEmail": "",
		},
		"push": map[string]any{
			"vapidPublicKey": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "CALCOM_APIKEY", want: "calcom.apiKey"},
		{envKey: "CALCOM_OWNEREMAIL", want: "calcom.ownerEmail"},
		{envKey: "PUSH_VAPIDPUBLICKEY", want: "push.vapidPublicKey"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
