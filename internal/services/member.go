package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hritamkar/library-management/internal/data/repos"
	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/pkg/apperr"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

type MemberService interface {
	Create(ctx context.Context, member *types.Member) (*types.Member, error)
	Get(ctx context.Context, memberID uuid.UUID) (*types.Member, error)
	List(ctx context.Context) ([]*types.Member, error)
}

type memberService struct {
	db         *gorm.DB
	log        *logger.Logger
	memberRepo repos.MemberRepo
}

func NewMemberService(db *gorm.DB, log *logger.Logger, memberRepo repos.MemberRepo) MemberService {
	serviceLog := log.With("service", "MemberService")
	return &memberService{
		db:         db,
		log:        serviceLog,
		memberRepo: memberRepo,
	}
}

// Create registers a member. The duplicate-email check is an exact,
// case-sensitive match against the stored value; Alice@example.com and
// alice@example.com are two different registrations.
func (ms *memberService) Create(ctx context.Context, member *types.Member) (*types.Member, error) {
	if strings.TrimSpace(member.Name) == "" {
		return nil, apperr.Validation("Name is mandatory")
	}
	if member.Email == "" {
		return nil, apperr.Validation("Email is mandatory")
	}
	if !emailPattern.MatchString(member.Email) {
		return nil, apperr.Validation("Invalid email format: " + member.Email)
	}

	var out *types.Member
	if err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := ms.memberRepo.EmailExists(ctx, tx, member.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Validation("Member with email " + member.Email + " already exists")
		}

		if member.ID == uuid.Nil {
			member.ID = uuid.New()
		}
		created, err := ms.memberRepo.Create(ctx, tx, member)
		if err != nil {
			return err
		}
		out = created
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (ms *memberService) Get(ctx context.Context, memberID uuid.UUID) (*types.Member, error) {
	member, err := ms.memberRepo.GetByID(ctx, nil, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperr.NotFound("Member with ID " + memberID.String() + " does not exist")
	}
	return member, nil
}

func (ms *memberService) List(ctx context.Context) ([]*types.Member, error) {
	return ms.memberRepo.List(ctx, nil)
}
