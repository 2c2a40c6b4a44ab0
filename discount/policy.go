// Package discount 折扣策略。
package discount

import "github.com/gocrud/hellocore/member"

// Policy 根据会员和价格计算折扣金额
type Policy interface {
	Discount(m member.Member, price int) int
}

// FixPolicy VIP 固定减免 Amount
type FixPolicy struct {
	Amount int
}

func NewFixPolicy(amount int) *FixPolicy {
	return &FixPolicy{Amount: amount}
}

func (p *FixPolicy) Discount(m member.Member, price int) int {
	if m.Grade != member.GradeVIP {
		return 0
	}
	return min(p.Amount, price)
}

// RatePolicy VIP 按 Percent 百分比折扣
type RatePolicy struct {
	Percent int
}

func NewRatePolicy(percent int) *RatePolicy {
	return &RatePolicy{Percent: percent}
}

func (p *RatePolicy) Discount(m member.Member, price int) int {
	if m.Grade != member.GradeVIP {
		return 0
	}
	return price * p.Percent / 100
}
