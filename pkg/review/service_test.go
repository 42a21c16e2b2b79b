package review

import (
	"errors"
	"strings"
	"testing"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/rcon"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/whitelist"
)

type fakeStore struct {
	result whitelist.Result
	err    error
	added  []string
}

func (f *fakeStore) Add(resolvedName string) (whitelist.Result, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.added = append(f.added, resolvedName)
	return f.result, nil
}

type fakeApplications struct {
	apps     map[string]*models.Application
	resolved []string
}

func newFakeApplications(apps ...*models.Application) *fakeApplications {
	f := &fakeApplications{apps: make(map[string]*models.Application)}
	for _, app := range apps {
		f.apps[app.MessageID] = app
	}
	return f
}

func (f *fakeApplications) Get(messageID string) (*models.Application, error) {
	app, ok := f.apps[messageID]
	if !ok {
		return nil, errors.New("solicitud no encontrada")
	}
	copied := *app
	return &copied, nil
}

func (f *fakeApplications) Resolve(messageID string, status models.ApplicationStatus, reviewerID, resolvedName, reason string) (*models.Application, error) {
	app, ok := f.apps[messageID]
	if !ok {
		return nil, errors.New("solicitud no encontrada")
	}
	if app.Status.IsTerminal() {
		return nil, errors.New("la solicitud ya fue resuelta")
	}
	app.Status = status
	app.ReviewerID = reviewerID
	app.ResolvedName = resolvedName
	app.Reason = reason
	f.resolved = append(f.resolved, messageID)
	copied := *app
	return &copied, nil
}

type fakeRoles struct {
	granted []string
	err     error
}

func (f *fakeRoles) Grant(userID string) error {
	if f.err != nil {
		return f.err
	}
	f.granted = append(f.granted, userID)
	return nil
}

type fakeNotifier struct {
	approved  int
	rejected  int
	duplicate bool
}

func (f *fakeNotifier) Approved(app *models.Application, duplicate bool) {
	f.approved++
	f.duplicate = duplicate
}

func (f *fakeNotifier) Rejected(app *models.Application) {
	f.rejected++
}

func pendingApp(messageID string) *models.Application {
	return &models.Application{
		MessageID:   messageID,
		ApplicantID: "user-1",
		Username:    "Steve",
		Edition:     "java",
		Status:      models.StatusPending,
	}
}

func newTestService(store *fakeStore, apps *fakeApplications) (*Service, *fakeRoles, *fakeNotifier) {
	roles := &fakeRoles{}
	notifier := &fakeNotifier{}
	return NewService(store, apps, roles, notifier), roles, notifier
}

func TestApproveSuccess(t *testing.T) {
	store := &fakeStore{result: whitelist.ResultAdded}
	apps := newFakeApplications(pendingApp("msg-1"))
	svc, roles, notifier := newTestService(store, apps)

	outcome, err := svc.Approve("msg-1", "reviewer-1")
	if err != nil {
		t.Fatalf("Approve falló: %v", err)
	}
	if outcome.Duplicate {
		t.Error("no debería marcarse como duplicado")
	}
	if outcome.App.Status != models.StatusApproved {
		t.Errorf("estado = %s, esperado approved", outcome.App.Status)
	}
	if outcome.App.ResolvedName != "Steve" {
		t.Errorf("ResolvedName = %q, esperado Steve", outcome.App.ResolvedName)
	}
	if len(roles.granted) != 1 || roles.granted[0] != "user-1" {
		t.Errorf("roles asignados = %v, esperado [user-1]", roles.granted)
	}
	if !outcome.RoleGranted {
		t.Error("RoleGranted debe ser true cuando la asignación funciona")
	}
	if notifier.approved != 1 {
		t.Errorf("notificaciones de aprobación = %d, esperado 1", notifier.approved)
	}
}

func TestApproveBedrockPrefix(t *testing.T) {
	store := &fakeStore{result: whitelist.ResultAdded}
	app := pendingApp("msg-1")
	app.Username = "Alex"
	app.Edition = "bedrock"
	apps := newFakeApplications(app)
	svc, _, _ := newTestService(store, apps)

	outcome, err := svc.Approve("msg-1", "reviewer-1")
	if err != nil {
		t.Fatalf("Approve falló: %v", err)
	}
	if outcome.App.ResolvedName != "1Alex" {
		t.Errorf("ResolvedName = %q, esperado 1Alex", outcome.App.ResolvedName)
	}
	if len(store.added) != 1 || store.added[0] != "1Alex" {
		t.Errorf("nombres añadidos = %v, esperado [1Alex]", store.added)
	}
}

func TestApproveDuplicateIsSuccess(t *testing.T) {
	store := &fakeStore{result: whitelist.ResultDuplicate}
	apps := newFakeApplications(pendingApp("msg-1"))
	svc, roles, notifier := newTestService(store, apps)

	outcome, err := svc.Approve("msg-1", "reviewer-1")
	if err != nil {
		t.Fatalf("un duplicado no debe fallar: %v", err)
	}
	if !outcome.Duplicate {
		t.Error("debería marcarse como duplicado")
	}
	if outcome.App.Status != models.StatusApproved {
		t.Errorf("estado = %s, esperado approved", outcome.App.Status)
	}
	if len(roles.granted) != 1 {
		t.Error("el rol debe re-sincronizarse aunque ya esté en la whitelist")
	}
	if !notifier.duplicate {
		t.Error("la notificación debe llevar la marca de duplicado")
	}
}

func TestApproveUnreachableLeavesPending(t *testing.T) {
	store := &fakeStore{err: rcon.ErrUnreachable}
	apps := newFakeApplications(pendingApp("msg-1"))
	svc, roles, notifier := newTestService(store, apps)

	_, err := svc.Approve("msg-1", "reviewer-1")
	if !errors.Is(err, rcon.ErrUnreachable) {
		t.Fatalf("error = %v, esperado ErrUnreachable", err)
	}
	if apps.apps["msg-1"].Status != models.StatusPending {
		t.Error("la solicitud debe seguir pendiente cuando el backend es inalcanzable")
	}
	if len(apps.resolved) != 0 {
		t.Error("no debe haber resoluciones persistidas")
	}
	if len(roles.granted) != 0 {
		t.Error("no debe asignarse rol")
	}
	if notifier.approved != 0 {
		t.Error("no debe notificarse aprobación")
	}
}

func TestApproveStalePress(t *testing.T) {
	store := &fakeStore{result: whitelist.ResultAdded}
	app := pendingApp("msg-1")
	app.Status = models.StatusApproved
	apps := newFakeApplications(app)
	svc, _, notifier := newTestService(store, apps)

	_, err := svc.Approve("msg-1", "reviewer-2")
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("error = %v, esperado ErrAlreadyResolved", err)
	}
	if len(store.added) != 0 {
		t.Error("una pulsación obsoleta no debe tocar la whitelist")
	}
	if notifier.approved != 0 {
		t.Error("una pulsación obsoleta no debe notificar")
	}
}

func TestApproveRoleFailureDoesNotAbort(t *testing.T) {
	store := &fakeStore{result: whitelist.ResultAdded}
	apps := newFakeApplications(pendingApp("msg-1"))
	svc, roles, notifier := newTestService(store, apps)
	roles.err = errors.New("rol inexistente")

	outcome, err := svc.Approve("msg-1", "reviewer-1")
	if err != nil {
		t.Fatalf("un fallo de rol no debe abortar la aprobación: %v", err)
	}
	if outcome.App.Status != models.StatusApproved {
		t.Errorf("estado = %s, esperado approved", outcome.App.Status)
	}
	if notifier.approved != 1 {
		t.Error("la aprobación debe notificarse aunque el rol falle")
	}
	if outcome.RoleGranted {
		t.Error("RoleGranted debe ser false para que el revisor vea el éxito parcial")
	}
}

func TestRejectSuccess(t *testing.T) {
	apps := newFakeApplications(pendingApp("msg-1"))
	svc, _, notifier := newTestService(&fakeStore{}, apps)

	resolved, err := svc.Reject("msg-1", "reviewer-1", "No cumple los requisitos mínimos")
	if err != nil {
		t.Fatalf("Reject falló: %v", err)
	}
	if resolved.Status != models.StatusRejected {
		t.Errorf("estado = %s, esperado rejected", resolved.Status)
	}
	if resolved.Reason != "No cumple los requisitos mínimos" {
		t.Errorf("motivo = %q", resolved.Reason)
	}
	if notifier.rejected != 1 {
		t.Errorf("notificaciones de rechazo = %d, esperado 1", notifier.rejected)
	}
}

func TestRejectReasonBoundary(t *testing.T) {
	cases := []struct {
		name   string
		reason string
		ok     bool
	}{
		{"vacío", "", false},
		{"solo espacios", "             ", false},
		{"nueve caracteres", strings.Repeat("a", MinReasonLength-1), false},
		{"exactamente el mínimo", strings.Repeat("a", MinReasonLength), true},
		{"espacios alrededor del mínimo", "  " + strings.Repeat("a", MinReasonLength) + "  ", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apps := newFakeApplications(pendingApp("msg-1"))
			svc, _, _ := newTestService(&fakeStore{}, apps)

			_, err := svc.Reject("msg-1", "reviewer-1", tc.reason)
			if tc.ok && err != nil {
				t.Errorf("Reject(%q) falló: %v", tc.reason, err)
			}
			if !tc.ok && !errors.Is(err, ErrReasonTooShort) {
				t.Errorf("Reject(%q) error = %v, esperado ErrReasonTooShort", tc.reason, err)
			}
		})
	}
}

func TestRejectStalePress(t *testing.T) {
	app := pendingApp("msg-1")
	app.Status = models.StatusRejected
	apps := newFakeApplications(app)
	svc, _, notifier := newTestService(&fakeStore{}, apps)

	_, err := svc.Reject("msg-1", "reviewer-2", "Motivo suficientemente largo")
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("error = %v, esperado ErrAlreadyResolved", err)
	}
	if notifier.rejected != 0 {
		t.Error("una pulsación obsoleta no debe notificar")
	}
}

func TestNewApplication(t *testing.T) {
	app := NewApplication("msg-1", "chan-1", "user-1", "Steve", "java", "Sí", "ninguna")
	if app.Status != models.StatusPending {
		t.Errorf("estado inicial = %s, esperado pending", app.Status)
	}
	if app.SubmittedAt.IsZero() {
		t.Error("SubmittedAt debe estar estampado")
	}
	if app.MessageID != "msg-1" || app.ApplicantID != "user-1" {
		t.Error("identificadores mal asignados")
	}
}
