// Package webhook posts payloads to account-level webhook handlers.
package webhook

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"salesdrive/internal/apierr"
	"salesdrive/internal/transport"
)

type Service struct {
	doer transport.Doer
	log  zerolog.Logger
}

func NewService(doer transport.Doer, logger zerolog.Logger) *Service {
	return &Service{
		doer: doer,
		log:  logger.With().Str("service", "webhook").Logger(),
	}
}

// Post sends payload to /{name}/ and decodes the answer into out, which may be nil
func (s *Service) Post(ctx context.Context, name string, payload any, out any) error {
	name = strings.Trim(name, "/ ")
	if name == "" {
		return apierr.InvalidArgument("webhook name is required")
	}
	path := "/" + name + "/"
	if err := s.doer.Post(ctx, path, payload, out); err != nil {
		return fmt.Errorf("post webhook %s: %w", name, err)
	}
	s.log.Debug().Str("webhook", name).Msg("webhook posted")
	return nil
}
