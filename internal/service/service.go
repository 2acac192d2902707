package service

//go:generate mockgen -destination=servicemock/mock_query_client.go -package=servicemock demo/minimart/internal/service QueryClient

import (
	"context"
	"errors"
	"fmt"

	"demo/minimart/internal/model"
	"demo/minimart/internal/response"
	"demo/minimart/internal/upstream"

	"github.com/rs/zerolog"
)

// Messages returned to callers for failed order queries.
const (
	MsgUnreachable    = "could not reach upstream"
	MsgUndecodable    = "could not decode upstream response"
	MsgUpstreamErrors = "upstream reported errors"
	MsgNoData         = "no data"
)

// UserStore looks up a single user; ok=false means no such user.
type UserStore interface {
	FindUserByID(ctx context.Context, id int64) (model.User, bool, error)
}

// QueryClient runs the orders query against the upstream service.
type QueryClient interface {
	Execute(ctx context.Context, vars model.Variables) (upstream.Result, error)
}

// Service turns collaborator outcomes into response envelopes. It keeps no
// per-request state.
type Service struct {
	users  UserStore
	orders QueryClient
}

func New(users UserStore, orders QueryClient) *Service {
	return &Service{users: users, orders: orders}
}

func (s *Service) LookupUser(ctx context.Context, id int64) response.Envelope {
	u, ok, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", id).Msg("user lookup failed")
		return response.Internal(response.MsgInternal)
	}
	if !ok {
		return response.NotFound(fmt.Sprintf("User %d not found", id))
	}
	return response.Success(u)
}

// ProxyOrders relays the orders query. Failures are ranked transport, then
// decode, then upstream-reported errors, then missing data.
func (s *Service) ProxyOrders(ctx context.Context, vars model.Variables) response.Envelope {
	log := zerolog.Ctx(ctx)

	res, err := s.orders.Execute(ctx, vars)
	switch {
	case errors.Is(err, upstream.ErrDecode):
		log.Error().Err(err).Msg("orders query: bad upstream response")
		return response.Internal(MsgUndecodable)
	case err != nil:
		log.Error().Err(err).Msg("orders query: upstream unreachable")
		return response.Internal(MsgUnreachable)
	}

	if len(res.Errors) > 0 {
		msgs := make([]string, 0, len(res.Errors))
		for _, e := range res.Errors {
			msgs = append(msgs, e.Message)
		}
		log.Error().Strs("upstream_errors", msgs).Msg("orders query: upstream reported errors")
		return response.Internal(MsgUpstreamErrors)
	}

	if !res.HasData() {
		return response.NotFound(MsgNoData)
	}
	return response.Success(res.Data)
}
