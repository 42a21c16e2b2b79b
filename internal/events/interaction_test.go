package events

import (
	"strings"
	"testing"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/review"
)

func approvedOutcome(duplicate, roleGranted bool) *review.Outcome {
	return &review.Outcome{
		App:         &models.Application{ResolvedName: "Steve123", Status: models.StatusApproved},
		Duplicate:   duplicate,
		RoleGranted: roleGranted,
	}
}

func TestApproveAckReportsRoleFailure(t *testing.T) {
	full := approveAck(approvedOutcome(false, true))
	partial := approveAck(approvedOutcome(false, false))

	if full == partial {
		t.Fatal("el éxito parcial debe distinguirse del éxito completo")
	}
	if strings.Contains(full, "rol") && strings.Contains(full, "⚠️") {
		t.Errorf("el éxito completo no debe llevar aviso de rol: %q", full)
	}
	if !strings.Contains(partial, "asígnalo manualmente") {
		t.Errorf("el éxito parcial debe pedir la asignación manual del rol: %q", partial)
	}
	if !strings.Contains(partial, "fue añadido a la whitelist") {
		t.Errorf("la aprobación sigue en pie aunque el rol falle: %q", partial)
	}
}

func TestApproveAckDuplicate(t *testing.T) {
	resynced := approveAck(approvedOutcome(true, true))
	if !strings.Contains(resynced, "re-sincronizado") {
		t.Errorf("un duplicado con rol debe anunciar la re-sincronización: %q", resynced)
	}

	withoutRole := approveAck(approvedOutcome(true, false))
	if strings.Contains(withoutRole, "re-sincronizado") {
		t.Errorf("un duplicado sin rol no puede anunciar re-sincronización: %q", withoutRole)
	}
	if !strings.Contains(withoutRole, "asígnalo manualmente") {
		t.Errorf("el duplicado sin rol debe llevar el aviso: %q", withoutRole)
	}
}
