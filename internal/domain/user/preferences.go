package user

// NotificationPreferences controls which notifications are also emailed.
type NotificationPreferences struct {
	EmailOnAssign  bool `json:"email_on_assign"`
	EmailOnComment bool `json:"email_on_comment"`
	EmailDigest    bool `json:"email_digest"`
}

// DefaultNotificationPreferences is what a new account starts with.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		EmailOnAssign:  true,
		EmailOnComment: true,
		EmailDigest:    false,
	}
}

// Merge overwrites only the known keys present in raw. Values are cast to
// bool the way a loosely typed client would expect: non-zero numbers and
// non-empty strings other than "false" and "0" are true.
func (p NotificationPreferences) Merge(raw map[string]any) NotificationPreferences {
	if v, ok := raw["email_on_assign"]; ok {
		p.EmailOnAssign = truthy(v)
	}
	if v, ok := raw["email_on_comment"]; ok {
		p.EmailOnComment = truthy(v)
	}
	if v, ok := raw["email_digest"]; ok {
		p.EmailDigest = truthy(v)
	}
	return p
}

// AllowsEmailFor reports whether the preference for kind is enabled.
// kind is a notification type value ("assigned" or "comment").
func (p NotificationPreferences) AllowsEmailFor(kind string) bool {
	switch kind {
	case "assigned":
		return p.EmailOnAssign
	case "comment":
		return p.EmailOnComment
	default:
		return false
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != "" && t != "false" && t != "0"
	default:
		return true
	}
}
