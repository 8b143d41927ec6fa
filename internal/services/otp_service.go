package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/example/salesapp/internal/domain"
	"github.com/example/salesapp/internal/models"
	otprepo "github.com/example/salesapp/internal/repository/otp"
	userrepo "github.com/example/salesapp/internal/repository/user"
	"github.com/example/salesapp/internal/utils"
)

// OtpTTL is how long an issued code stays verifiable.
const OtpTTL = 5 * time.Minute

// OtpService implements the passwordless login flow: a customer requests a
// 6-digit code by email and trades it for a session token. Codes are
// single-use and bound to exactly one account.
type OtpService struct {
	users     userrepo.Repository
	codes     otprepo.Repository
	mailer    Mailer
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewOtpService constructs an OtpService.
func NewOtpService(users userrepo.Repository, codes otprepo.Repository, mailer Mailer, jwtSecret string, tokenTTL time.Duration) *OtpService {
	return &OtpService{
		users:     users,
		codes:     codes,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// RequestCode issues a fresh code for the given email. Only unblocked
// Customer accounts are eligible; anything else returns domain.ErrNotFound so
// the endpoint does not confirm which emails exist. A blocked account is the
// one case that is surfaced explicitly.
func (s *OtpService) RequestCode(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}

	if user.Role != models.RoleCustomer {
		return domain.ErrNotFound
	}
	if user.IsBlocked {
		return domain.ErrBlocked
	}

	code, err := generateOtpCode()
	if err != nil {
		return fmt.Errorf("generate otp code: %w", err)
	}

	record := &models.OtpCode{
		UserID:    user.ID,
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(OtpTTL),
		Used:      false,
	}
	if err := s.codes.Create(ctx, record); err != nil {
		return err
	}

	// Best-effort delivery. The stored code stays valid either way; the
	// customer can re-request if the mail never arrives.
	if err := s.mailer.SendCode(email, code); err != nil {
		log.Printf("[Otp] code delivery to %s failed: %v", email, err)
	}

	return nil
}

// VerifyCode redeems the newest valid code for a session token. Wrong,
// expired and already-used codes all collapse into domain.ErrInvalidCode so
// the endpoint cannot be used as a code-guessing oracle.
func (s *OtpService) VerifyCode(ctx context.Context, email, code string) (string, error) {
	record, err := s.codes.GetValid(ctx, email, code, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCode
		}
		return "", err
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCode
		}
		return "", err
	}
	// The account may have been blocked between issuance and verification.
	if user.IsBlocked {
		return "", domain.ErrInvalidCode
	}

	// Single-writer-wins: if a concurrent verification got here first, the
	// conditional update fails and this attempt reports an invalid code.
	if err := s.codes.MarkUsed(ctx, record.ID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return "", domain.ErrInvalidCode
		}
		return "", err
	}

	return utils.GenerateToken(s.jwtSecret, user.ID, user.Role, s.tokenTTL)
}

// SweepExpired deletes used and expired codes. Removing an already-unusable
// row is always safe, so the sweep needs no coordination.
func (s *OtpService) SweepExpired(ctx context.Context) (int64, error) {
	return s.codes.DeleteExpired(ctx, s.now())
}

// generateOtpCode returns a uniform 6-digit code, zero-padded so the string
// always has exactly six ASCII digits.
func generateOtpCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
