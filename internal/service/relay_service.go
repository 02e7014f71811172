package service

import (
	"context"
	"errors"
	"log"
	"os"
	"time"
	"unicode/utf8"

	"github.com/Shravan-Padale771/QuickBackend/internal/apperrors"
	"github.com/Shravan-Padale771/QuickBackend/internal/model"
	"github.com/Shravan-Padale771/QuickBackend/internal/repository"
)

const (
	// messageTTL is how long a message stays retrievable after creation.
	messageTTL = 7 * 24 * time.Hour

	maxContentLength = 10000

	// maxCodeAttempts bounds the collision-retry loop. The store's unique
	// constraint remains the authority; the pre-insert check only cuts
	// down wasted inserts.
	maxCodeAttempts = 5

	defaultStoreTimeout = 5 * time.Second
)

// RelayService implements code issuance and expiry-gated lookup on top of
// the message repository.
type RelayService struct {
	repo         repository.MessageRepository
	storeTimeout time.Duration
	logger       *log.Logger

	now     func() time.Time
	newCode func() (string, error)
}

// Options configures RelayService.
type Options struct {
	StoreTimeout time.Duration
	Logger       *log.Logger
}

// NewRelayService builds a RelayService.
func NewRelayService(repo repository.MessageRepository, opts Options) *RelayService {
	timeout := opts.StoreTimeout
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "relay-service ", log.LstdFlags)
	}

	return &RelayService{
		repo:         repo,
		storeTimeout: timeout,
		logger:       logger,
		now:          time.Now,
		newCode:      generateCode,
	}
}

// SendInput carries the sender-supplied fields for a new message.
type SendInput struct {
	Topic   string
	Author  string
	Message string
}

// Created is what the sender gets back for a stored message.
type Created struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Send validates the input, issues a unique code and persists the message.
// No store access happens if validation fails.
func (s *RelayService) Send(ctx context.Context, in SendInput) (Created, error) {
	if err := validateSendInput(in); err != nil {
		return Created{}, err
	}

	expiresAt := s.now().UTC().Add(messageTTL)

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return Created{}, apperrors.Store(err)
		}

		exists, err := s.codeExists(ctx, code)
		if err != nil {
			s.logger.Printf("code pre-check failed: %v", err)
			return Created{}, apperrors.Store(err)
		}
		if exists {
			continue
		}

		msg := &model.Message{
			Topic:     in.Topic,
			Author:    in.Author,
			Content:   in.Message,
			Code:      code,
			ExpiresAt: expiresAt,
		}

		err = s.create(ctx, msg)
		if errors.Is(err, repository.ErrDuplicateCode) {
			// Lost the race to a concurrent issuance; the constraint did
			// its job, draw again.
			continue
		}
		if err != nil {
			s.logger.Printf("message insert failed: %v", err)
			return Created{}, apperrors.Store(err)
		}

		return Created{ID: msg.ID, Code: msg.Code, ExpiresAt: msg.ExpiresAt}, nil
	}

	s.logger.Printf("code generation exhausted after %d attempts", maxCodeAttempts)
	return Created{}, apperrors.ErrCollisionExhausted
}

// Receive resolves a code to its live message. Expired and never-issued
// codes both come back as ErrNotFound.
func (s *RelayService) Receive(ctx context.Context, code string) (*model.Message, error) {
	if code == "" {
		return nil, apperrors.Validation("code", "is required")
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	msg, err := s.repo.GetLiveByCode(storeCtx, code, s.now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		s.logger.Printf("lookup failed: %v", err)
		return nil, apperrors.Store(err)
	}
	return msg, nil
}

// ListMessages returns every stored message for the admin surface.
func (s *RelayService) ListMessages(ctx context.Context) ([]model.Message, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	messages, err := s.repo.ListAll(storeCtx)
	if err != nil {
		s.logger.Printf("list failed: %v", err)
		return nil, apperrors.Store(err)
	}
	return messages, nil
}

// DeleteMessage removes a message by id. Deleting an id that is already
// gone is not an error.
func (s *RelayService) DeleteMessage(ctx context.Context, id int64) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	err := s.repo.DeleteByID(storeCtx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Printf("delete failed: %v", err)
		return apperrors.Store(err)
	}
	return nil
}

func (s *RelayService) codeExists(ctx context.Context, code string) (bool, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.repo.CodeExists(storeCtx, code)
}

func (s *RelayService) create(ctx context.Context, msg *model.Message) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return s.repo.Create(storeCtx, msg)
}

func validateSendInput(in SendInput) error {
	if in.Topic == "" {
		return apperrors.Validation("topic", "is required")
	}
	if in.Author == "" {
		return apperrors.Validation("author", "is required")
	}
	if in.Message == "" {
		return apperrors.Validation("message", "is required")
	}
	if utf8.RuneCountInString(in.Message) > maxContentLength {
		return apperrors.Validation("message", "must be at most 10000 characters")
	}
	return nil
}
