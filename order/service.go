package order

import (
	"fmt"

	"github.com/gocrud/hellocore/discount"
	"github.com/gocrud/hellocore/member"
)

// Service 订单服务
type Service interface {
	CreateOrder(memberID int64, itemName string, itemPrice int) (Order, error)
}

// DefaultService 只知道折扣策略的接口，折扣规则变化不影响订单
type DefaultService struct {
	repo   member.Repository
	policy discount.Policy
}

func NewService(repo member.Repository, policy discount.Policy) *DefaultService {
	return &DefaultService{repo: repo, policy: policy}
}

func (s *DefaultService) CreateOrder(memberID int64, itemName string, itemPrice int) (Order, error) {
	m, err := s.repo.FindByID(memberID)
	if err != nil {
		return Order{}, fmt.Errorf("order: create for member %d: %w", memberID, err)
	}
	return Order{
		MemberID:      memberID,
		ItemName:      itemName,
		ItemPrice:     itemPrice,
		DiscountPrice: s.policy.Discount(m, itemPrice),
	}, nil
}

// Repository 返回注入的会员存储
func (s *DefaultService) Repository() member.Repository {
	return s.repo
}
