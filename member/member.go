// Package member 会员领域：会员实体、存储和会员服务。
package member

import "fmt"

// Grade 会员等级
type Grade int

const (
	GradeBasic Grade = iota
	GradeVIP
)

func (g Grade) String() string {
	switch g {
	case GradeBasic:
		return "BASIC"
	case GradeVIP:
		return "VIP"
	default:
		return fmt.Sprintf("Grade(%d)", int(g))
	}
}

// Member 会员
type Member struct {
	ID    int64
	Name  string
	Grade Grade
}

func (m Member) String() string {
	return fmt.Sprintf("Member{id=%d, name=%s, grade=%s}", m.ID, m.Name, m.Grade)
}
