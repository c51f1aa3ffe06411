package localstore

import "strings"

// Global keys.
const (
	KeySession      = "hm_session"
	KeyUsers        = "hm_users"
	KeyAPIToken     = "hm_api_token"
	KeyFeatureFlags = "hm_feature_flags"
)

// Per-owner key prefixes. The owner id is appended.
const (
	PrefixBMILogs    = "hm_bmi_logs_"
	PrefixBMRLogs    = "hm_bmr_logs_"
	PrefixHRLogs     = "hm_hr_logs_"
	PrefixWaterLogs  = "hm_water_logs_"
	PrefixWaterGoal  = "hm_water_goal_"
	PrefixActionLogs = "hm_action_logs_"
)

// OwnerKey joins a per-owner prefix and an owner id.
func OwnerKey(prefix, ownerID string) string {
	return prefix + ownerID
}

var ownerPrefixes = []string{
	PrefixBMILogs, PrefixBMRLogs, PrefixHRLogs,
	PrefixWaterLogs, PrefixWaterGoal, PrefixActionLogs,
}

// SplitOwnerKey returns the prefix and owner id of a per-owner key.
func SplitOwnerKey(key string) (prefix, ownerID string, ok bool) {
	for _, p := range ownerPrefixes {
		if id, found := strings.CutPrefix(key, p); found && id != "" {
			return p, id, true
		}
	}
	return "", "", false
}

// OwnerKeys lists every per-owner key for ownerID.
func OwnerKeys(ownerID string) []string {
	out := make([]string, 0, len(ownerPrefixes))
	for _, p := range ownerPrefixes {
		out = append(out, p+ownerID)
	}
	return out
}
