package service

import (
	"context"

	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type AccountRepository interface {
	FindByID(id int) (*entity.Account, error)
	FindActiveByID(id int) (*entity.Account, error)
	FindByEmail(email string) (*entity.Account, error)
	ExistsByEmail(email string) (bool, error)
	Save(account *entity.Account) error
}

type SessionCache interface {
	SetToken(ctx context.Context, userID int, token string) error
	DeleteToken(ctx context.Context, userID int) error
	FlushAll(ctx context.Context) error
	SetResetToken(ctx context.Context, resetToken string, userID int) error
	PullResetToken(ctx context.Context, resetToken string) (int, error)
}

type TokenCodec interface {
	Encode(userID int) (string, error)
	Decode(raw string) (int, error)
}

type Mailer interface {
	Send(to, subject, body string) error
}

type AuthService struct {
	Accounts AccountRepository
	Sessions SessionCache
	Tokens   TokenCodec
	Mailer   Mailer
	Validate *validator.Validate

	// BaseURL is the externally reachable address used in email links.
	BaseURL string
	// LogoutFlushAll preserves the historical logout behavior of flushing
	// the whole cache database instead of just the caller's token key.
	LogoutFlushAll bool
}

func NewAuthService(
	accounts AccountRepository,
	sessions SessionCache,
	tokens TokenCodec,
	mailer Mailer,
	validate *validator.Validate,
	baseURL string,
	logoutFlushAll bool,
) *AuthService {
	return &AuthService{
		Accounts:       accounts,
		Sessions:       sessions,
		Tokens:         tokens,
		Mailer:         mailer,
		Validate:       validate,
		BaseURL:        baseURL,
		LogoutFlushAll: logoutFlushAll,
	}
}

// Register creates an inactive, unverified account and emails a
// verification link. The account cannot log in until verified.
func (a *AuthService) Register(req *contract.RegisterRequest) (*contract.AccountResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	exists, err := a.Accounts.ExistsByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check email existence: %v", err)
		return nil, apierror.UnexpectedError
	}
	if exists {
		return nil, apierror.EmailExistsError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.UnexpectedError
	}

	now := utils.NowUTC()
	account := &entity.Account{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.Accounts.Save(account); err != nil {
		log.Errorf("failed to create account: %v", err)
		return nil, apierror.UnexpectedError
	}

	verifyToken, err := a.Tokens.Encode(account.ID)
	if err != nil {
		log.Errorf("failed to sign verification token: %v", err)
		return nil, apierror.UnexpectedError
	}

	link := a.BaseURL + "/email-verify?token=" + verifyToken
	body := "Hi " + account.UserName + ",\nUse the link below to verify your email\n" + link
	a.sendAsync(account.Email, "Verify your email", body)

	log.Infof("registered account %d (%s)", account.ID, account.Email)
	return toAccountResponse(account), nil
}

// VerifyEmail flips the account to verified and active. Verifying an
// already verified account is a no-op success.
func (a *AuthService) VerifyEmail(rawToken string) apierror.ErrorResponse {
	userID, err := a.Tokens.Decode(rawToken)
	if err != nil {
		return apierror.InvalidTokenError
	}

	account, err := a.Accounts.FindByID(userID)
	if err != nil {
		log.Errorf("failed to fetch account %d: %v", userID, err)
		return apierror.UnexpectedError
	}
	if account == nil {
		return apierror.AccountNotFoundError
	}

	if !account.IsVerified {
		account.IsVerified = true
		account.IsActive = true
		account.UpdatedAt = utils.NowUTC()
		if err := a.Accounts.Save(account); err != nil {
			log.Errorf("failed to activate account %d: %v", account.ID, err)
			return apierror.UnexpectedError
		}
	}
	return nil
}

// Login checks the credentials and issues a fresh token, overwriting any
// previous session for the account.
func (a *AuthService) Login(ctx context.Context, req *contract.LoginRequest) (string, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return "", apierror.FromValidationError(err)
	}

	account, err := a.Accounts.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch account by email: %v", err)
		return "", apierror.UnexpectedError
	}
	if account == nil {
		return "", apierror.AccountNotFoundError
	}

	if !account.IsVerified || !account.IsActive {
		return "", apierror.UnverifiedAccountError
	}

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)) != nil {
		return "", apierror.InvalidCredentialsError
	}

	signed, err := a.Tokens.Encode(account.ID)
	if err != nil {
		log.Errorf("failed to sign token: %v", err)
		return "", apierror.UnexpectedError
	}

	if err := a.Sessions.SetToken(ctx, account.ID, signed); err != nil {
		log.Errorf("failed to store session token: %v", err)
		return "", apierror.UnexpectedError
	}
	return signed, nil
}

func (a *AuthService) Logout(ctx context.Context, actor *entity.Account) apierror.ErrorResponse {
	if a.LogoutFlushAll {
		if err := a.Sessions.FlushAll(ctx); err != nil {
			log.Errorf("failed to flush cache on logout: %v", err)
			return apierror.UnexpectedError
		}
		return nil
	}

	if err := a.Sessions.DeleteToken(ctx, actor.ID); err != nil {
		log.Errorf("failed to delete session token: %v", err)
		return apierror.UnexpectedError
	}
	return nil
}

// RequestPasswordReset emails a single-use reset link. It reports success
// whether or not the email resolves, to avoid leaking account existence.
func (a *AuthService) RequestPasswordReset(ctx context.Context, req *contract.ResetRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	account, err := a.Accounts.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch account by email: %v", err)
		return apierror.UnexpectedError
	}
	if account == nil {
		return nil
	}

	resetToken := uuid.NewString()
	if err := a.Sessions.SetResetToken(ctx, resetToken, account.ID); err != nil {
		log.Errorf("failed to store reset token: %v", err)
		return apierror.UnexpectedError
	}

	link := a.BaseURL + "/password-reset?token=" + resetToken
	body := "Hello,\nUse the link below to reset your password\n" + link
	a.sendAsync(account.Email, "Reset your password", body)
	return nil
}

func (a *AuthService) CompletePasswordReset(ctx context.Context, req *contract.ResetCompleteRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	userID, err := a.Sessions.PullResetToken(ctx, req.Token)
	if err != nil {
		log.Errorf("failed to resolve reset token: %v", err)
		return apierror.UnexpectedError
	}
	if userID == 0 {
		return apierror.ResetTokenInvalidError
	}

	account, err := a.Accounts.FindByID(userID)
	if err != nil {
		log.Errorf("failed to fetch account %d: %v", userID, err)
		return apierror.UnexpectedError
	}
	if account == nil {
		return apierror.AccountNotFoundError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return apierror.UnexpectedError
	}

	account.Password = string(hash)
	account.UpdatedAt = utils.NowUTC()
	if err := a.Accounts.Save(account); err != nil {
		log.Errorf("failed to update password for account %d: %v", account.ID, err)
		return apierror.UnexpectedError
	}

	log.Infof("password reset completed for account %d", account.ID)
	return nil
}

// sendAsync dispatches mail fire-and-forget; delivery failures are logged
// and never fail the request.
func (a *AuthService) sendAsync(to, subject, body string) {
	go func() {
		if err := a.Mailer.Send(to, subject, body); err != nil {
			log.Errorf("failed to send %q mail to %s: %v", subject, to, err)
		}
	}()
}

func toAccountResponse(account *entity.Account) *contract.AccountResponse {
	return &contract.AccountResponse{
		ID:         account.ID,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		UserName:   account.UserName,
		Email:      account.Email,
		IsVerified: account.IsVerified,
		CreatedAt:  utils.FormatEpoch(account.CreatedAt),
	}
}
