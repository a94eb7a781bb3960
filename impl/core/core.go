package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"zylumine/entity"
	"zylumine/impl/auth"
	"zylumine/impl/letter"
	"zylumine/impl/purchase"
	"zylumine/internal/events"
	"zylumine/internal/mailer"
	"zylumine/lib/sl"
)

type Database interface {
	CreateGuest(ctx context.Context, guest *entity.Guest) error
	GuestByEmail(ctx context.Context, email string) (*entity.Guest, error)
	CreateAdmin(ctx context.Context, admin *entity.Admin) error
	AdminByEmail(ctx context.Context, email string) (*entity.Admin, error)
}

type Mailer interface {
	Send(ctx context.Context, msg *entity.MailMessage) error
}

type AuthService interface {
	Verify(ctx context.Context, email, password string) (*entity.Admin, error)
	Known(ctx context.Context, email string) (*entity.Admin, error)
}

type SessionService interface {
	Issue(ctx context.Context, name, email, provider string) (string, *entity.Identity, error)
	Parse(ctx context.Context, token string) (*entity.Identity, error)
	Revoke(ctx context.Context, id *entity.Identity) error
}

type Notifier interface {
	Send(ctx context.Context, text string) error
}

type Core struct {
	db            Database
	mail          Mailer
	auth          AuthService
	sessions      SessionService
	events        events.Publisher
	notifier      Notifier
	feedbackTo    string
	allowRegister bool
	requireAdmin  bool
	log           *slog.Logger
}

func New(db Database, mail Mailer, log *slog.Logger) *Core {
	if db == nil {
		panic("database is nil")
	}
	return &Core{
		db:            db,
		mail:          mail,
		events:        events.Nop{},
		allowRegister: true,
		requireAdmin:  true,
		log:           log.With(sl.Module("core")),
	}
}

func (c *Core) SetAuthService(auth AuthService) {
	c.auth = auth
}

func (c *Core) SetSessionService(sessions SessionService) {
	c.sessions = sessions
}

func (c *Core) SetPublisher(p events.Publisher) {
	if p == nil {
		p = events.Nop{}
	}
	c.events = p
}

func (c *Core) SetNotifier(n Notifier) {
	c.notifier = n
}

// SetFeedbackRecipient sets the operator inbox that receives feedback summaries.
func (c *Core) SetFeedbackRecipient(email string) {
	c.feedbackTo = email
}

func (c *Core) SetAllowRegister(allow bool) {
	c.allowRegister = allow
}

// SetRequireAdmin makes OAuth sign-in accept only emails with an admin record.
func (c *Core) SetRequireAdmin(require bool) {
	c.requireAdmin = require
}

func (c *Core) GenerateCode(_ context.Context) (*entity.PurchaseCode, error) {
	code, err := purchase.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}
	return &code, nil
}

// RegisterGuest stores the guest and then mails the code. The two steps are not
// atomic: when the mail fails the guest stays stored and ErrMailFailed is returned.
func (c *Core) RegisterGuest(ctx context.Context, reg *entity.GuestRegistration) (*entity.Guest, error) {
	log := c.log.With(slog.String("email", reg.Email), sl.Code(reg.Code))

	guest := &entity.Guest{
		Name:  reg.Name,
		Email: reg.Email,
		Code:  reg.Code,
	}
	if err := c.db.CreateGuest(ctx, guest); err != nil {
		log.Error("create guest", sl.Err(err))
		return nil, err
	}

	msg, err := mailer.PurchaseCodeMail(guest)
	if err != nil {
		log.Error("render code mail", sl.Err(err))
		return nil, fmt.Errorf("%w: %v", entity.ErrMailFailed, err)
	}
	if reg.Subject != "" {
		msg.Subject = reg.Subject
	}
	if reg.Message != "" {
		msg.HTML = reg.Message
		msg.Text = ""
	}

	sendErr := c.send(ctx, msg)
	c.publish(ctx, events.GuestRegistered, events.GuestRegisteredEvent{
		Name:       guest.Name,
		Email:      guest.Email,
		MailSent:   sendErr == nil,
		Registered: guest.CreatedAt,
	})
	if sendErr != nil {
		log.With(slog.String("guest_id", guest.ID)).Error("guest stored, code mail failed", sl.Err(sendErr))
		return nil, fmt.Errorf("%w: %v", entity.ErrMailFailed, sendErr)
	}

	log.With(slog.String("guest_id", guest.ID)).Info("guest registered")
	return guest, nil
}

// VerifyCode never changes the guest; a valid pair can be checked any number of times.
func (c *Core) VerifyCode(ctx context.Context, req *entity.CodeVerification) (*entity.GuestIdentity, error) {
	guest, err := c.db.GuestByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			c.log.Error("find guest", sl.Err(err))
		}
		return nil, err
	}
	if guest.Code != req.Code {
		c.log.With(slog.String("email", req.Email), sl.Code(req.Code)).Debug("code mismatch")
		return nil, entity.ErrInvalidCode
	}
	return guest.Identity(), nil
}

func (c *Core) Letter(ctx context.Context, req *entity.CodeVerification) (*letter.Letter, error) {
	id, err := c.VerifyCode(ctx, req)
	if err != nil {
		return nil, err
	}
	return letter.Compose(id), nil
}

func (c *Core) SubmitFeedback(ctx context.Context, f *entity.Feedback) error {
	if f.SubmittedAt.IsZero() {
		f.SubmittedAt = time.Now().UTC()
	}
	log := c.log.With(slog.String("name", f.Name), slog.Int("rating", f.Rating))

	if c.feedbackTo == "" {
		return fmt.Errorf("%w: feedback recipient not configured", entity.ErrMailFailed)
	}
	msg, err := mailer.FeedbackMail(c.feedbackTo, f)
	if err != nil {
		log.Error("render feedback mail", sl.Err(err))
		return fmt.Errorf("%w: %v", entity.ErrMailFailed, err)
	}
	if err = c.send(ctx, msg); err != nil {
		log.Error("send feedback mail", sl.Err(err))
		return fmt.Errorf("%w: %v", entity.ErrMailFailed, err)
	}

	if c.notifier != nil {
		text := fmt.Sprintf("%s\n%s %s, recommend: %t", mailer.FeedbackSubject(f), f.Stars(), f.Quality, f.Recommend)
		if f.Comments != "" {
			text += "\n" + f.Comments
		}
		if err = c.notifier.Send(ctx, text); err != nil {
			log.Warn("notify operator", sl.Err(err))
		}
	}
	c.publish(ctx, events.FeedbackSubmitted, events.FeedbackSubmittedEvent{
		Name:        f.Name,
		Rating:      f.Rating,
		Quality:     f.Quality,
		Recommend:   f.Recommend,
		SubmittedAt: f.SubmittedAt,
	})
	log.Info("feedback sent")
	return nil
}

// SendMail delivers an operator-composed message; Message is used as the HTML body.
func (c *Core) SendMail(ctx context.Context, req *entity.MailRequest) error {
	err := c.send(ctx, &entity.MailMessage{
		To:      req.To,
		Subject: req.Subject,
		HTML:    req.Message,
	})
	if err != nil {
		c.log.With(slog.String("to", req.To)).Error("send mail", sl.Err(err))
		return fmt.Errorf("%w: %v", entity.ErrMailFailed, err)
	}
	return nil
}

func (c *Core) send(ctx context.Context, msg *entity.MailMessage) error {
	if c.mail == nil {
		return fmt.Errorf("mailer not configured")
	}
	return c.mail.Send(ctx, msg)
}

func (c *Core) publish(ctx context.Context, subject string, data interface{}) {
	if err := c.events.Publish(ctx, subject, data); err != nil {
		c.log.With(slog.String("subject", subject)).Warn("publish event", sl.Err(err))
	}
}

func (c *Core) RegisterAdmin(ctx context.Context, reg *entity.AdminRegistration) (*entity.Admin, error) {
	if !c.allowRegister {
		return nil, entity.ErrDisabled
	}
	hash, err := auth.Hash(reg.Password)
	if err != nil {
		return nil, err
	}
	admin := &entity.Admin{
		Name:     reg.Name,
		Email:    reg.Email,
		Password: hash,
	}
	if err = c.db.CreateAdmin(ctx, admin); err != nil {
		c.log.With(slog.String("email", reg.Email)).Error("create admin", sl.Err(err))
		return nil, err
	}
	c.log.With(slog.String("email", admin.Email)).Info("admin registered")
	return admin, nil
}

// Login checks the credentials and opens a session; every credential problem
// is reported as entity.ErrInvalidCredentials.
func (c *Core) Login(ctx context.Context, cred *entity.Credentials) (string, *entity.Identity, error) {
	if c.auth == nil || c.sessions == nil {
		return "", nil, fmt.Errorf("auth service not connected")
	}
	admin, err := c.auth.Verify(ctx, cred.Email, cred.Password)
	if err != nil {
		return "", nil, err
	}
	return c.sessions.Issue(ctx, admin.Name, admin.Email, entity.ProviderCredentials)
}

// OAuthLogin opens a session for an identity proven by the OAuth provider.
func (c *Core) OAuthLogin(ctx context.Context, name, email string) (string, *entity.Identity, error) {
	if c.sessions == nil {
		return "", nil, fmt.Errorf("auth service not connected")
	}
	email = entity.NormalizeEmail(email)
	if c.requireAdmin {
		if c.auth == nil {
			return "", nil, fmt.Errorf("auth service not connected")
		}
		admin, err := c.auth.Known(ctx, email)
		if errors.Is(err, entity.ErrNotFound) {
			return "", nil, entity.ErrInvalidCredentials
		}
		if err != nil {
			return "", nil, err
		}
		if name == "" {
			name = admin.Name
		}
	}
	return c.sessions.Issue(ctx, name, email, entity.ProviderGoogle)
}

func (c *Core) AuthenticateByToken(ctx context.Context, token string) (*entity.Identity, error) {
	if c.sessions == nil {
		return nil, fmt.Errorf("auth service not connected")
	}
	return c.sessions.Parse(ctx, token)
}

func (c *Core) Logout(ctx context.Context, id *entity.Identity) error {
	if c.sessions == nil {
		return nil
	}
	return c.sessions.Revoke(ctx, id)
}
