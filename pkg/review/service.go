// Package review implements the lifecycle of whitelist applications,
// from pending submission to an approved or rejected resolution.
package review

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/rcon"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/whitelist"
)

// MinReasonLength is the minimum length of a rejection reason
const MinReasonLength = 10

var (
	ErrAlreadyResolved = errors.New("la solicitud ya fue resuelta")
	ErrReasonTooShort  = fmt.Errorf("el motivo debe tener al menos %d caracteres", MinReasonLength)
)

// Applications is the persistence seam for application records
type Applications interface {
	Get(messageID string) (*models.Application, error)
	Resolve(messageID string, status models.ApplicationStatus, reviewerID, resolvedName, reason string) (*models.Application, error)
}

// RoleGranter assigns the whitelist role to an approved applicant
type RoleGranter interface {
	Grant(userID string) error
}

// Notifier fans a resolution out to the announcement surfaces
type Notifier interface {
	Approved(app *models.Application, duplicate bool)
	Rejected(app *models.Application)
}

// Outcome describes what an approval actually did. RoleGranted is
// false when the whitelist role could not be assigned, the approval
// stands but the reviewer gets a partial-success note
type Outcome struct {
	App         *models.Application
	Duplicate   bool
	RoleGranted bool
}

// Service coordinates application resolution against the whitelist
// backend, the record store, the role granter and the notifier
type Service struct {
	Store        whitelist.Store
	Applications Applications
	Roles        RoleGranter
	Notifier     Notifier
}

// NewService builds a Service with all collaborators wired
func NewService(store whitelist.Store, apps Applications, roles RoleGranter, notifier Notifier) *Service {
	return &Service{
		Store:        store,
		Applications: apps,
		Roles:        roles,
		Notifier:     notifier,
	}
}

// Approve resolves a pending application as approved. The whitelist
// mutation happens before the status flip, so an unreachable backend
// leaves the application pending and retryable. A name that is already
// whitelisted counts as success with the duplicate flag set
func (s *Service) Approve(messageID, reviewerID string) (*Outcome, error) {
	app, err := s.Applications.Get(messageID)
	if err != nil {
		return nil, err
	}
	if app.Status.IsTerminal() {
		return nil, ErrAlreadyResolved
	}

	resolvedName := whitelist.Resolve(app.Username, app.Edition)

	result, err := s.Store.Add(resolvedName)
	if err != nil {
		if errors.Is(err, rcon.ErrUnreachable) {
			logger.Warn(fmt.Sprintf("Backend inalcanzable al aprobar %s, la solicitud sigue pendiente", resolvedName), "Review")
		}
		return nil, err
	}
	duplicate := result == whitelist.ResultDuplicate

	resolved, err := s.Applications.Resolve(messageID, models.StatusApproved, reviewerID, resolvedName, "")
	if err != nil {
		// A concurrent reviewer resolved it first. The whitelist add is
		// idempotent, so nothing to undo
		return nil, err
	}

	roleGranted := true
	if grantErr := s.Roles.Grant(resolved.ApplicantID); grantErr != nil {
		roleGranted = false
		logger.Error(fmt.Sprintf("No se pudo asignar el rol a %s: %v", resolved.ApplicantID, grantErr), "Review")
	}

	if duplicate {
		logger.Info(fmt.Sprintf("%s ya estaba en la whitelist, rol re-sincronizado", resolvedName), "Review")
	} else {
		logger.Info(fmt.Sprintf("%s añadido a la whitelist por %s", resolvedName, reviewerID), "Review")
	}

	s.Notifier.Approved(resolved, duplicate)

	return &Outcome{App: resolved, Duplicate: duplicate, RoleGranted: roleGranted}, nil
}

// Reject resolves a pending application as rejected with a reason. The
// reason is mandatory and must carry enough text to be useful to the
// applicant
func (s *Service) Reject(messageID, reviewerID, reason string) (*models.Application, error) {
	if len(strings.TrimSpace(reason)) < MinReasonLength {
		return nil, ErrReasonTooShort
	}

	app, err := s.Applications.Get(messageID)
	if err != nil {
		return nil, err
	}
	if app.Status.IsTerminal() {
		return nil, ErrAlreadyResolved
	}

	resolved, err := s.Applications.Resolve(messageID, models.StatusRejected, reviewerID, "", strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Solicitud de %s rechazada por %s", resolved.Username, reviewerID), "Review")
	s.Notifier.Rejected(resolved)

	return resolved, nil
}

// NewApplication builds a pending application record from a submitted
// form, stamped with the current time
func NewApplication(messageID, channelID, applicantID, username, edition, playedBefore, notes string) models.Application {
	return models.Application{
		MessageID:    messageID,
		ChannelID:    channelID,
		ApplicantID:  applicantID,
		Username:     username,
		Edition:      edition,
		PlayedBefore: playedBefore,
		Notes:        notes,
		Status:       models.StatusPending,
		SubmittedAt:  time.Now(),
	}
}
