// model/role.go
package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAuthor Role = "author"
	RoleReader Role = "reader"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleAuthor, RoleReader:
		return true
	}
	return false
}

// RoleList is the user's role set. Stored as a single comma-joined text
// column; membership is a linear scan over at most three entries.
type RoleList []Role

func DefaultRoles() RoleList { return RoleList{RoleReader} }

func (rl RoleList) Has(r Role) bool {
	for _, x := range rl {
		if x == r {
			return true
		}
	}
	return false
}

func (rl RoleList) IsAdmin() bool { return rl.Has(RoleAdmin) }

func (rl RoleList) Strings() []string {
	out := make([]string, len(rl))
	for i, r := range rl {
		out[i] = string(r)
	}
	return out
}

func ParseRoles(ss []string) (RoleList, error) {
	if len(ss) == 0 {
		return DefaultRoles(), nil
	}
	out := make(RoleList, 0, len(ss))
	for _, s := range ss {
		r := Role(strings.TrimSpace(strings.ToLower(s)))
		if !ValidRole(r) {
			return nil, fmt.Errorf("unknown role %q", s)
		}
		if !out.Has(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (rl RoleList) Value() (driver.Value, error) {
	return strings.Join(rl.Strings(), ","), nil
}

func (rl *RoleList) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*rl = DefaultRoles()
		return nil
	default:
		return fmt.Errorf("cannot scan %T into RoleList", src)
	}
	if s == "" {
		*rl = DefaultRoles()
		return nil
	}
	parsed, err := ParseRoles(strings.Split(s, ","))
	if err != nil {
		return err
	}
	*rl = parsed
	return nil
}
