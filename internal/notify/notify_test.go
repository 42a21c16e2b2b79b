package notify

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestStampClosedEmbedRefreshesTimestamp(t *testing.T) {
	submitted := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
	embed := &discordgo.MessageEmbed{
		Title:     "📨 Nueva solicitud de whitelist",
		Color:     0xFEE75C,
		Footer:    &discordgo.MessageEmbedFooter{Text: "Pendiente de revisión"},
		Timestamp: submitted,
	}

	before := time.Now()
	stampClosedEmbed(embed, colorApproved, "Aprobada por <@revisor-1>")

	if embed.Color != colorApproved {
		t.Errorf("color = %#x, esperado %#x", embed.Color, colorApproved)
	}
	if embed.Footer == nil || embed.Footer.Text != "Aprobada por <@revisor-1>" {
		t.Errorf("pie = %+v, esperado el revisor estampado", embed.Footer)
	}
	if embed.Timestamp == submitted {
		t.Fatal("el timestamp debe moverse de la fecha de envío a la de resolución")
	}

	stamped, err := time.Parse(time.RFC3339, embed.Timestamp)
	if err != nil {
		t.Fatalf("timestamp inválido %q: %v", embed.Timestamp, err)
	}
	if stamped.Before(before.Truncate(time.Second)) {
		t.Errorf("timestamp = %s, debe ser la hora de la resolución", embed.Timestamp)
	}
}
