package company

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"vitrine-be/internal/logger"
	"vitrine-be/internal/utils"

	"go.uber.org/zap"
)

// One or more hostname labels followed by an alphabetic TLD, so dotted
// domains like loja.com.br validate.
var domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

type Service interface {
	Create(ctx context.Context, ownerID uint, input CreateInput) (*Company, error)
	GetForOwner(ctx context.Context, ownerID uint) (*Company, error)
	GetBySlug(ctx context.Context, slug string) (*Company, error)
	GetByDomain(ctx context.Context, domain string) (*Company, error)
	List(ctx context.Context, limit, offset int32) ([]*Company, error)
	Update(ctx context.Context, ownerID, companyID uint, input UpdateInput) (*Company, error)
	BindDomain(ctx context.Context, ownerID uint, domain string) (*DomainCheck, error)
}

// Resolver is the subset of net.Resolver used for domain verification,
// extracted so tests can stub DNS.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

type service struct {
	repo     Repository
	resolver Resolver
	serverIP string
}

func NewService(repo Repository, resolver Resolver, serverIP string) Service {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return &service{repo: repo, resolver: resolver, serverIP: serverIP}
}

func (s *service) Create(ctx context.Context, ownerID uint, input CreateInput) (*Company, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateCompany"),
		zap.Uint("owner_id", ownerID),
	)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("company name is required")
	}

	// One company per user.
	if _, err := s.repo.GetByOwner(ctx, ownerID); err == nil {
		return nil, ErrAlreadyOwner
	} else if !errors.Is(err, ErrCompanyNotFound) {
		return nil, err
	}

	if input.Domain != nil && *input.Domain != "" {
		if !domainRegex.MatchString(*input.Domain) {
			return nil, ErrInvalidDomain
		}
		if _, err := s.repo.GetByDomain(ctx, *input.Domain); err == nil {
			return nil, ErrDomainTaken
		} else if !errors.Is(err, ErrCompanyNotFound) {
			return nil, err
		}
	} else {
		input.Domain = nil
	}

	c := &Company{
		OwnerID: ownerID,
		Name:    name,
		Slug:    utils.Slugify(name),
		Domain:  input.Domain,
		Phone:   utils.NormalizePhoneBR(input.Phone),
		Address: input.Address,
		City:    input.City,
		State:   input.State,
		Active:  true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		log.Error("failed to create company", zap.Error(err))
		return nil, err
	}

	log.Info("company created",
		zap.Uint("company_id", c.ID),
		zap.String("slug", c.Slug),
	)
	return c, nil
}

func (s *service) GetForOwner(ctx context.Context, ownerID uint) (*Company, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Company, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) GetByDomain(ctx context.Context, domain string) (*Company, error) {
	return s.repo.GetByDomain(ctx, domain)
}

func (s *service) List(ctx context.Context, limit, offset int32) ([]*Company, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Update(ctx context.Context, ownerID, companyID uint, input UpdateInput) (*Company, error) {
	c, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		c.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		c.Phone = utils.NormalizePhoneBR(*input.Phone)
	}
	if input.Address != nil {
		c.Address = *input.Address
	}
	if input.City != nil {
		c.City = *input.City
	}
	if input.State != nil {
		c.State = *input.State
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// BindDomain verifies the domain's A record points at the configured server
// IP and, when it does, stores it on the caller's company. Certificate
// provisioning is handled outside this service.
func (s *service) BindDomain(ctx context.Context, ownerID uint, domain string) (*DomainCheck, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "BindDomain"),
		zap.String("domain", domain),
	)

	if !domainRegex.MatchString(domain) {
		return nil, ErrInvalidDomain
	}

	c, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	check := &DomainCheck{Domain: domain, ExpectedIP: s.serverIP}

	ips, err := s.resolver.LookupHost(ctx, domain)
	if err != nil {
		check.Message = fmt.Sprintf("DNS lookup failed: %v", err)
		log.Warn("dns lookup failed", zap.Error(err))
		return check, nil
	}

	check.ResolvedTo = ips
	for _, ip := range ips {
		if ip == s.serverIP {
			check.OK = true
			break
		}
	}

	if !check.OK {
		check.Message = "domain does not point at the server"
		return check, nil
	}

	if err := s.repo.SetDomain(ctx, c.ID, &domain); err != nil {
		return nil, err
	}

	check.Message = "domain verified and bound"
	log.Info("domain bound", zap.Uint("company_id", c.ID))
	return check, nil
}
