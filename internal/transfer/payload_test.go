package transfer

import (
	"fmt"
	"testing"
	"time"

	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, 5, 10, 14, 30, 5, 0, time.UTC)

func newTestBuilder() *PayloadBuilder {
	return NewPayloadBuilder(time.UTC, func() time.Time { return fixedNow })
}

func TestIdeaUpdate_FieldSet(t *testing.T) {
	b := newTestBuilder()
	p := b.IdeaUpdate(models.Idea{ID: "1", ClientID: "c1", Status: models.IdeaStatusDraft}, IdeaExtra{})

	for _, key := range []string{
		"id", "cliente_id", "cliente_nome", "titulo", "plataforma", "formato", "ideia", "objetivo",
		"cta", "roteiro", "legenda", "hashtags", "referencia", "status", "needs_reapproval",
		"comentarios", "created_at", "data_aprovacao", "data_publicacao", "dataAprovacao",
		"dataPostagem", "comentario",
	} {
		assert.Contains(t, p, key)
	}
	assert.Equal(t, []models.Comment{}, p["comentarios"])
	assert.Nil(t, p["data_aprovacao"])
	assert.Nil(t, p["dataAprovacao"])
	assert.Nil(t, p["comentario"])
}

func TestIdeaUpdate_ApprovalStampedWhenEnteringDesign(t *testing.T) {
	b := newTestBuilder()
	idea := models.Idea{ID: "1", Status: models.IdeaStatusPendingApproval}

	p := b.IdeaUpdate(idea, IdeaExtra{Status: models.IdeaStatusInDesign, Comment: "ótimo"})

	assert.Equal(t, "em_design", p["status"])
	assert.Equal(t, "2024-05-10", p["data_aprovacao"])
	assert.Equal(t, "2024-05-10 14:30:05", p["dataAprovacao"])
	assert.Equal(t, "ótimo", p["comentario"])
}

func TestIdeaUpdate_ExistingApprovalDatePreserved(t *testing.T) {
	b := newTestBuilder()
	idea := models.Idea{ID: "1", ApprovalDate: "2024-03-15", Status: models.IdeaStatusPendingApproval}

	p := b.IdeaUpdate(idea, IdeaExtra{Status: models.IdeaStatusInDesign})
	assert.Equal(t, "2024-03-15", p["data_aprovacao"])
	assert.Equal(t, "2024-03-15 00:00:00", p["dataAprovacao"])

	other := b.IdeaUpdate(idea, IdeaExtra{Status: models.IdeaStatusNeedsChanges})
	assert.Equal(t, "2024-03-15", other["data_aprovacao"])
	assert.Equal(t, "2024-03-15 00:00:00", other["dataAprovacao"])
}

func TestIdeaUpdate_NoApprovalOutsideDesign(t *testing.T) {
	b := newTestBuilder()
	p := b.IdeaUpdate(models.Idea{ID: "1", Status: models.IdeaStatusPendingApproval}, IdeaExtra{Status: models.IdeaStatusNeedsChanges})
	assert.Nil(t, p["data_aprovacao"])
	assert.Nil(t, p["dataAprovacao"])
}

func TestIdeaUpdate_PostingDate(t *testing.T) {
	b := newTestBuilder()
	idea := models.Idea{ID: "1", PublishDate: "2024-06-01", Status: models.IdeaStatusInDesign}

	assert.Equal(t, "2024-06-01 00:00:00", b.IdeaUpdate(idea, IdeaExtra{})["dataPostagem"])
	assert.Equal(t, "2024-05-10 14:30:05", b.IdeaUpdate(idea, IdeaExtra{Status: models.IdeaStatusPublished})["dataPostagem"])
}

func TestIdeaUpdate_ExtrasDoNotOverwrite(t *testing.T) {
	b := newTestBuilder()
	p := b.IdeaUpdate(models.Idea{ID: "1", Status: models.IdeaStatusDraft}, IdeaExtra{
		Fields: map[string]any{"status": "hacked", "id": "2", "origem": "dashboard"},
	})
	assert.Equal(t, "rascunho", p["status"])
	assert.Equal(t, "1", p["id"])
	assert.Equal(t, "dashboard", p["origem"])
}

func TestPublicationUpdate_MediaColumns(t *testing.T) {
	b := newTestBuilder()
	pub := models.Publication{ID: "p1", Status: models.PublicationStatusInDesign}.SetMedia([]string{"a", "b", "c"}, "b")

	p := b.PublicationUpdate(pub, PublicationExtra{})

	assert.Equal(t, "a", p["midia_url"])
	assert.Equal(t, []string{"a", "b", "c"}, p["midia_urls"])
	assert.Equal(t, "b", p["cover_url"])
	assert.Equal(t, "a", p["midia_url1"])
	assert.Equal(t, "b", p["midia_url2"])
	assert.Equal(t, "c", p["midia_url3"])
	for n := 4; n <= 10; n++ {
		assert.Nil(t, p[fmt.Sprintf("midia_url%d", n)])
	}
}

func TestPublicationUpdate_Dates(t *testing.T) {
	b := newTestBuilder()
	pub := models.Publication{
		ID:          "p1",
		Status:      models.PublicationStatusScheduled,
		ScheduledAt: "2024-06-01T09:00:00Z",
		PostedAt:    "2024-06-01T09:02:00Z",
	}

	scheduled := b.PublicationUpdate(pub, PublicationExtra{})
	assert.Equal(t, "2024-06-01T09:00:00Z", scheduled["data_agendada"])
	assert.Equal(t, "2024-06-01 09:00:00", scheduled["dataAgendada"])
	assert.Equal(t, "2024-06-01 09:02:00", scheduled["dataPostagem"])
	assert.Nil(t, scheduled["dataAprovacao"])

	published := b.PublicationUpdate(pub, PublicationExtra{Status: models.PublicationStatusPublished})
	assert.Equal(t, "publicado", published["status"])
	assert.Equal(t, "2024-05-10 14:30:05", published["dataPostagem"])

	approved := b.PublicationUpdate(pub, PublicationExtra{Status: models.PublicationStatusApproved})
	assert.Equal(t, "2024-05-10 14:30:05", approved["dataAprovacao"])

	pub.Status = models.PublicationStatusApproved
	edited := b.PublicationUpdate(pub, PublicationExtra{Status: models.PublicationStatusApproved})
	assert.Equal(t, "aprovado", edited["status"])
	assert.Nil(t, edited["dataAprovacao"])

	implicit := b.PublicationUpdate(pub, PublicationExtra{})
	assert.Nil(t, implicit["dataAprovacao"])
}

func TestPublicationUpdate_RatingAndComment(t *testing.T) {
	b := newTestBuilder()
	stored := 6
	given := 9

	pub := models.Publication{ID: "p1", Rating: &stored}
	assert.Equal(t, 6, b.PublicationUpdate(pub, PublicationExtra{})["nota"])

	p := b.PublicationUpdate(pub, PublicationExtra{Rating: &given, Comment: "lindo", Fields: map[string]any{"nota": 1}})
	assert.Equal(t, 9, p["nota"])
	assert.Equal(t, "lindo", p["comentario"])

	assert.Nil(t, b.PublicationUpdate(models.Publication{ID: "p2"}, PublicationExtra{})["nota"])
}

func TestPublicationFromIdea(t *testing.T) {
	b := newTestBuilder()
	idea := models.Idea{
		ID:           "i1",
		ClientID:     "c1",
		Title:        "Promo",
		Platform:     models.PlatformFacebook,
		Format:       models.FormatCarousel,
		Caption:      "Confira",
		ApprovalDate: "2024-05-09",
		Status:       models.IdeaStatusInDesign,
		Comments:     []models.Comment{{Author: "Cliente", Text: "ok"}},
	}

	p := b.PublicationFromIdea(idea)

	assert.Nil(t, p["id"])
	assert.Equal(t, "i1", p["ideia_id"])
	assert.Equal(t, "c1", p["cliente_id"])
	assert.Equal(t, "em_design", p["status"])
	assert.Equal(t, "Promo", p["titulo"])
	assert.Equal(t, "Facebook", p["plataforma"])
	assert.Equal(t, "Carrossel", p["formato"])
	assert.Equal(t, "Confira", p["legenda"])
	assert.Equal(t, "2024-05-09 00:00:00", p["dataAprovacao"])
	assert.Equal(t, []models.Comment{}, p["comentarios"])
	assert.Equal(t, []string{}, p["midia_urls"])
	assert.Nil(t, p["midia_url"])
	assert.Nil(t, p["cover_url"])
	for n := 1; n <= 10; n++ {
		assert.Nil(t, p[fmt.Sprintf("midia_url%d", n)])
	}
}
