package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"payment-relay/core/store/appwrite"
	"payment-relay/feature/relay"

	"go.uber.org/zap"
)

// ErrMissingUserID is returned for events without a user id.
var ErrMissingUserID = errors.New("user id is required")

// Users fetches platform accounts.
type Users interface {
	GetUser(ctx context.Context, userID string) (appwrite.User, error)
}

// Dispatcher delivers a customer vault envelope to the relay.
type Dispatcher interface {
	Dispatch(ctx context.Context, env relay.Envelope) (string, error)
}

// Service turns user events into customer vault envelopes.
type Service struct {
	users      Users
	dispatcher Dispatcher
	logger     *zap.Logger
}

// NewService creates a vault sync service.
func NewService(users Users, dispatcher Dispatcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, dispatcher: dispatcher, logger: logger}
}

// Outcome describes one synced user.
type Outcome struct {
	UserID   string         `json:"userId"`
	Action   string         `json:"requestAction"`
	Envelope relay.Envelope `json:"envelope"`
	Ref      string         `json:"ref,omitempty"`
}

// Sync fetches the user and dispatches the matching envelope. initiatedBy
// defaults to the user itself.
func (s *Service) Sync(ctx context.Context, userID, initiatedBy string) (*Outcome, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	env := BuildEnvelope(user, initiatedBy)
	ref, err := s.dispatcher.Dispatch(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("failed to dispatch %s for user %s: %w", env.RequestAction, userID, err)
	}

	s.logger.Info("User synced to vault",
		zap.String("user_id", user.ID),
		zap.String("action", env.RequestAction),
		zap.String("ref", ref),
	)
	return &Outcome{UserID: user.ID, Action: env.RequestAction, Envelope: env, Ref: ref}, nil
}

// BuildEnvelope maps a user to a customerVault envelope. Accounts whose
// update time differs from their creation time are updates.
func BuildEnvelope(user appwrite.User, initiatedBy string) relay.Envelope {
	action := "addCustomer"
	if user.CreatedAt != user.UpdatedAt {
		action = "updateCustomer"
	}
	if initiatedBy == "" {
		initiatedBy = user.ID
	}

	first, last := splitName(user.Name)
	data := map[string]interface{}{
		"email":             user.Email,
		"customer_vault_id": user.ID,
		"first_name":        first,
		"phone":             user.Phone,
	}
	if last != "" {
		data["last_name"] = last
	}

	return relay.Envelope{
		RequestCategory: relay.CategoryCustomerVault,
		RequestAction:   action,
		InitiatedBy:     initiatedBy,
		Data:            data,
	}
}

func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}

// Executions triggers platform functions.
type Executions interface {
	CreateExecution(ctx context.Context, functionID string, req appwrite.ExecutionRequest) (appwrite.Execution, error)
}

// FunctionDispatcher queues an asynchronous execution of the relay function.
type FunctionDispatcher struct {
	functions  Executions
	functionID string
}

// NewFunctionDispatcher creates a dispatcher for functionID.
func NewFunctionDispatcher(functions Executions, functionID string) *FunctionDispatcher {
	return &FunctionDispatcher{functions: functions, functionID: functionID}
}

// Dispatch returns the execution id.
func (d *FunctionDispatcher) Dispatch(ctx context.Context, env relay.Envelope) (string, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to encode envelope: %w", err)
	}
	ex, err := d.functions.CreateExecution(ctx, d.functionID, appwrite.ExecutionRequest{
		Body:    string(body),
		Async:   true,
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
	})
	if err != nil {
		return "", err
	}
	return ex.ID, nil
}

// Relayer is the in-process relay.
type Relayer interface {
	Relay(ctx context.Context, rayID string, env relay.Envelope) (*relay.Result, error)
}

// LocalDispatcher relays envelopes in-process.
type LocalDispatcher struct {
	relay Relayer
}

// NewLocalDispatcher creates a dispatcher over r.
func NewLocalDispatcher(r Relayer) *LocalDispatcher {
	return &LocalDispatcher{relay: r}
}

// Dispatch returns the gateway status of the relayed request.
func (d *LocalDispatcher) Dispatch(ctx context.Context, env relay.Envelope) (string, error) {
	res, err := d.relay.Relay(ctx, "", env)
	if err != nil {
		return "", err
	}
	return res.Status, nil
}
