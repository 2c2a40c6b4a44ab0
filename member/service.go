package member

import "fmt"

// Service 会员服务
type Service interface {
	Join(m Member) error
	FindMember(id int64) (Member, error)
}

// DefaultService 只依赖 Repository 接口，具体存储由外部注入
type DefaultService struct {
	repo Repository
}

func NewService(repo Repository) *DefaultService {
	return &DefaultService{repo: repo}
}

func (s *DefaultService) Join(m Member) error {
	if err := s.repo.Save(m); err != nil {
		return fmt.Errorf("member: join %d: %w", m.ID, err)
	}
	return nil
}

func (s *DefaultService) FindMember(id int64) (Member, error) {
	return s.repo.FindByID(id)
}

// Repository 返回注入的存储，用于验证多个服务共享同一实例
func (s *DefaultService) Repository() Repository {
	return s.repo
}
