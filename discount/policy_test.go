package discount

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocrud/hellocore/member"
)

func TestPolicies(t *testing.T) {
	vip := member.Member{ID: 1, Name: "memberVIP", Grade: member.GradeVIP}
	basic := member.Member{ID: 2, Name: "memberBASIC", Grade: member.GradeBasic}

	tests := []struct {
		name   string
		policy Policy
		member member.Member
		price  int
		want   int
	}{
		{"fix vip", NewFixPolicy(1000), vip, 10000, 1000},
		{"fix basic", NewFixPolicy(1000), basic, 10000, 0},
		{"fix never exceeds price", NewFixPolicy(1000), vip, 500, 500},
		{"rate vip", NewRatePolicy(10), vip, 10000, 1000},
		{"rate vip 20000", NewRatePolicy(10), vip, 20000, 2000},
		{"rate basic", NewRatePolicy(10), basic, 10000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Discount(tt.member, tt.price))
		})
	}
}
