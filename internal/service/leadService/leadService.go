package leadService

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/KotFed0t/loi_bazaar_bot/config"
	"github.com/KotFed0t/loi_bazaar_bot/data/session"
	"github.com/KotFed0t/loi_bazaar_bot/internal/catalog"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model"
	"github.com/KotFed0t/loi_bazaar_bot/internal/service"
	"github.com/KotFed0t/loi_bazaar_bot/internal/submission"
	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
	"github.com/KotFed0t/loi_bazaar_bot/utils"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	reportFileTimeFormat = "2006-01-02_15-04"
	formIDLength         = 8
)

type Repository interface {
	InsertLead(ctx context.Context, lead model.Lead) (leadID int64, err error)
	GetLeadsAfter(ctx context.Context, afterID int64, limit int) (leads []model.Lead, err error)
}

type Session interface {
	GetSession(ctx context.Context, key string) (model.Session, error)
	SetSession(ctx context.Context, key string, session model.Session) error
	DeleteSession(ctx context.Context, key string) error
}

type Cache interface {
	GetLeadsReportCursor(ctx context.Context) (int64, error)
	SetLeadsReportCursor(ctx context.Context, cursor int64) error
}

type CrmApi interface {
	NotifyLead(ctx context.Context, lead model.Lead) error
}

type ReportGenerator interface {
	Generate(ctx context.Context, leads []model.Lead) (fileBytes []byte, fileExtension string, err error)
}

type CloudStorage interface {
	UploadFile(ctx context.Context, reader io.Reader, filename string) (downloadLink string, err error)
	DeleteOldFiles(ctx context.Context) error
}

type LeadService struct {
	cfg             *config.Config
	catalog         *catalog.Catalog
	formatter       *submission.Formatter
	repo            Repository
	session         Session
	cache           Cache
	crmApi          CrmApi
	reportGenerator ReportGenerator
	cloudStorage    CloudStorage
	clock           clockwork.Clock
	locker          *chatLocker
}

// New wires the service. cloudStorage may be nil, in which case report
// methods return service.ErrStorageDisabled.
func New(
	cfg *config.Config,
	cat *catalog.Catalog,
	formatter *submission.Formatter,
	repo Repository,
	session Session,
	cache Cache,
	crmApi CrmApi,
	reportGenerator ReportGenerator,
	cloudStorage CloudStorage,
	clock clockwork.Clock,
) *LeadService {
	return &LeadService{
		cfg:             cfg,
		catalog:         cat,
		formatter:       formatter,
		repo:            repo,
		session:         session,
		cache:           cache,
		crmApi:          crmApi,
		reportGenerator: reportGenerator,
		cloudStorage:    cloudStorage,
		clock:           clock,
		locker:          newChatLocker(),
	}
}

func sessionKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func newFormID() string {
	return uuid.NewString()[:formIDLength]
}

func (s *LeadService) getSession(ctx context.Context, chatID int64) (model.Session, error) {
	chatSession, err := s.session.GetSession(ctx, sessionKey(chatID))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return model.Session{}, service.ErrSessionExpired
		}
		return model.Session{}, err
	}
	return chatSession, nil
}

// getForm loads the session and checks that formID names the chat's
// current form.
func (s *LeadService) getForm(ctx context.Context, chatID int64, formID string) (model.Session, error) {
	chatSession, err := s.getSession(ctx, chatID)
	if err != nil {
		return model.Session{}, err
	}
	if chatSession.Record.ID != formID {
		return model.Session{}, service.ErrStaleAction
	}
	return chatSession, nil
}

// Start opens a fresh form for the chat, dropping any previous one.
func (s *LeadService) Start(ctx context.Context, chatID int64) (wizard.Screen, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LeadService.Start"

	unlock := s.locker.Lock(chatID)
	defer unlock()

	chatSession := model.NewSession(s.clock.Now())
	chatSession.Record.ID = newFormID()
	screen := wizard.Render(&chatSession.Record, s.catalog)

	if err := s.session.SetSession(ctx, sessionKey(chatID), chatSession); err != nil {
		slog.Error("got error from session.SetSession", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return wizard.Screen{}, err
	}

	slog.Info("form started", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("chatID", chatID))

	return screen, nil
}

func (s *LeadService) Cancel(ctx context.Context, chatID int64) error {
	unlock := s.locker.Lock(chatID)
	defer unlock()

	return s.session.DeleteSession(ctx, sessionKey(chatID))
}

// Select answers step of form formID with value. The chat must still be
// on that form and step: buttons of an older message are rejected with
// service.ErrStaleAction.
func (s *LeadService) Select(ctx context.Context, chatID int64, formID string, step wizard.Step, value string) (wizard.Screen, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LeadService.Select"

	unlock := s.locker.Lock(chatID)
	defer unlock()

	chatSession, err := s.getForm(ctx, chatID, formID)
	if err != nil {
		return wizard.Screen{}, err
	}

	rec := &chatSession.Record
	if rec.Submitted {
		return wizard.Screen{}, service.ErrAlreadySent
	}
	if rec.Step != step {
		slog.Debug("stale selection", slog.String("rqID", rqID), slog.String("op", op), slog.String("step", step.String()), slog.String("current", rec.Step.String()))
		return wizard.Screen{}, service.ErrStaleAction
	}

	if err = wizard.Select(rec, s.catalog, step, value); err != nil {
		slog.Warn("selection rejected", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return wizard.Screen{}, err
	}

	if err = s.session.SetSession(ctx, sessionKey(chatID), chatSession); err != nil {
		return wizard.Screen{}, err
	}

	slog.Debug("selection saved", slog.String("rqID", rqID), slog.String("op", op), slog.String("step", step.String()), slog.String("value", value))

	return wizard.Render(rec, s.catalog), nil
}

// AdvanceFrom moves form formID forward if it is still the chat's form and
// still on step from. It reports whether the form moved.
func (s *LeadService) AdvanceFrom(ctx context.Context, chatID int64, formID string, from wizard.Step) (wizard.Screen, bool, error) {
	unlock := s.locker.Lock(chatID)
	defer unlock()

	chatSession, err := s.getForm(ctx, chatID, formID)
	if errors.Is(err, service.ErrStaleAction) {
		return wizard.Screen{}, false, nil
	}
	if err != nil {
		return wizard.Screen{}, false, err
	}

	rec := &chatSession.Record
	if rec.Step != from || !rec.Advance() {
		return wizard.Render(rec, s.catalog), false, nil
	}

	screen := wizard.Render(rec, s.catalog)
	if err = s.session.SetSession(ctx, sessionKey(chatID), chatSession); err != nil {
		return wizard.Screen{}, false, err
	}

	return screen, true, nil
}

// Back moves form formID one step back from step from.
func (s *LeadService) Back(ctx context.Context, chatID int64, formID string, from wizard.Step) (wizard.Screen, error) {
	unlock := s.locker.Lock(chatID)
	defer unlock()

	chatSession, err := s.getForm(ctx, chatID, formID)
	if err != nil {
		return wizard.Screen{}, err
	}

	rec := &chatSession.Record
	if rec.Submitted {
		return wizard.Screen{}, service.ErrAlreadySent
	}
	if rec.Step != from {
		return wizard.Screen{}, service.ErrStaleAction
	}
	if !rec.Retreat() {
		return wizard.Render(rec, s.catalog), nil
	}

	screen := wizard.Render(rec, s.catalog)
	if err = s.session.SetSession(ctx, sessionKey(chatID), chatSession); err != nil {
		return wizard.Screen{}, err
	}

	return screen, nil
}

// Submit turns the completed form into a lead: it is stored, forwarded to
// the CRM and the form is closed.
func (s *LeadService) Submit(ctx context.Context, chatID int64, formID, username string) (model.Lead, wizard.Screen, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LeadService.Submit"

	unlock := s.locker.Lock(chatID)
	defer unlock()

	chatSession, err := s.getForm(ctx, chatID, formID)
	if err != nil {
		return model.Lead{}, wizard.Screen{}, err
	}

	rec := &chatSession.Record
	if rec.Submitted {
		return model.Lead{}, wizard.Screen{}, service.ErrAlreadySent
	}
	if rec.Step != wizard.StepSummary {
		return model.Lead{}, wizard.Screen{}, service.ErrNotOnSummary
	}

	sub := s.formatter.Format(*rec)
	lead := model.Lead{
		Reference:    uuid.NewString(),
		ChatID:       chatID,
		Username:     username,
		Intent:       string(rec.Intent),
		Location:     rec.Location,
		PropertyType: rec.Type,
		Size:         rec.Size,
		Message:      sub.Message,
		Link:         sub.Link,
		DtCreate:     s.clock.Now(),
	}
	if rec.HasSubLocation {
		lead.Block = rec.Block
	}

	lead.LeadID, err = s.repo.InsertLead(ctx, lead)
	if err != nil {
		slog.Error("got error from repo.InsertLead", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Lead{}, wizard.Screen{}, err
	}

	if err = s.crmApi.NotifyLead(ctx, lead); err != nil {
		slog.Error("got error from crmApi.NotifyLead", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	rec.Submitted = true
	if err = s.session.SetSession(ctx, sessionKey(chatID), chatSession); err != nil {
		slog.Error("lead stored but session was not closed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	slog.Info("lead submitted", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("leadID", lead.LeadID), slog.String("reference", lead.Reference))

	return lead, wizard.Render(rec, s.catalog), nil
}

// ExportLeadsReport uploads a report with the leads submitted since the
// previous export. count is 0 when there was nothing new.
func (s *LeadService) ExportLeadsReport(ctx context.Context) (link string, count int, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "LeadService.ExportLeadsReport"

	if s.cloudStorage == nil {
		return "", 0, service.ErrStorageDisabled
	}

	cursor, err := s.cache.GetLeadsReportCursor(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("get report cursor: %w", err)
	}

	leads, err := s.repo.GetLeadsAfter(ctx, cursor, s.cfg.LeadsPerReport)
	if err != nil {
		return "", 0, fmt.Errorf("get leads: %w", err)
	}

	if len(leads) == 0 {
		slog.Info("no new leads for report", slog.String("rqID", rqID), slog.String("op", op), slog.Int64("cursor", cursor))
		return "", 0, nil
	}

	fileBytes, ext, err := s.reportGenerator.Generate(ctx, leads)
	if err != nil {
		return "", 0, fmt.Errorf("generate report: %w", err)
	}

	filename := fmt.Sprintf("leads_%s%s", s.clock.Now().Format(reportFileTimeFormat), ext)
	link, err = s.cloudStorage.UploadFile(ctx, bytes.NewReader(fileBytes), filename)
	if err != nil {
		return "", 0, fmt.Errorf("upload report: %w", err)
	}

	lastID := leads[len(leads)-1].LeadID
	if err = s.cache.SetLeadsReportCursor(ctx, lastID); err != nil {
		return "", 0, fmt.Errorf("set report cursor: %w", err)
	}

	slog.Info("leads report exported", slog.String("rqID", rqID), slog.String("op", op), slog.Int("leads", len(leads)), slog.Int64("cursor", lastID))

	return link, len(leads), nil
}

func (s *LeadService) DeleteOldReports(ctx context.Context) error {
	if s.cloudStorage == nil {
		return service.ErrStorageDisabled
	}
	return s.cloudStorage.DeleteOldFiles(ctx)
}
