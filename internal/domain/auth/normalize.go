package auth

import (
	"encoding/json"
	"strconv"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// The backend emits user-shaped payloads with more than one spelling per
// field, depending on whether the object came from the login response or
// from decoded token claims. The accepted alternates are part of the wire
// contract and are declared here as JMESPath fallback chains; `||` yields
// the first non-null operand.
const (
	userIDExpr = "user_id || userId || id"
	nameExpr   = "name || fullName"
	emailExpr  = "email"
	roleExpr   = "role"
)

// NormalizeUser maps a loosely-shaped backend payload (login response user
// object or decoded token claims) to the canonical User. The mapping is
// total: absent or malformed fields degrade to zero values, and the role is
// normalized so that a missing or non-string role matches no real role.
func NormalizeUser(payload map[string]any) User {
	return User{
		ID:    toID(search(userIDExpr, payload)),
		Name:  toString(search(nameExpr, payload)),
		Email: toString(search(emailExpr, payload)),
		Role:  NormalizeRole(search(roleExpr, payload)),
	}
}

func search(expr string, payload map[string]any) any {
	if payload == nil {
		return nil
	}
	v, err := jmespath.Search(expr, payload)
	if err != nil {
		return nil
	}
	return v
}

func toString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// toID coerces the numeric spellings seen in JSON documents and JWT claims
// (float64 from encoding/json, json.Number, or a numeric string) to int64.
func toID(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case json.Number:
		id, err := n.Int64()
		if err != nil {
			return 0
		}
		return id
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return id
	default:
		return 0
	}
}
