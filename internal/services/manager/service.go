package manager

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/manager"
	phonenum "salesdrive/internal/phone"
	"salesdrive/internal/transport"
)

const lookupPath = "/api/get_manager_by_phone_number/"

type Service struct {
	doer transport.Doer
	log  zerolog.Logger
}

func NewService(doer transport.Doer, logger zerolog.Logger) *Service {
	return &Service{
		doer: doer,
		log:  logger.With().Str("service", "manager").Logger(),
	}
}

// FindByPhone returns the manager responsible for the client with the given
// phone number. Formatting in phone is stripped before the lookup.
func (s *Service) FindByPhone(ctx context.Context, phone string) (*manager.Match, error) {
	phone, err := phonenum.Normalize(phone)
	if err != nil {
		return nil, err
	}

	var resp manager.LookupResponse
	if err := s.doer.Get(ctx, lookupPath, url.Values{"phone": {phone}}, &resp); err != nil {
		return nil, fmt.Errorf("find manager: %w", err)
	}
	if err := apierr.CheckAuthMessage(resp.Message); err != nil {
		return nil, err
	}
	if resp.Status == "error" || resp.Manager == nil {
		msg := resp.Message
		if msg == "" {
			msg = "no manager for " + phone
		}
		return nil, apierr.NotFound("%s", msg)
	}
	return &manager.Match{Manager: *resp.Manager, Client: resp.Client}, nil
}
