package transfer

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestNormalizeIdea_Aliases(t *testing.T) {
	n := NewNormalizer(time.UTC)

	raw := decode(t, `{
		"id": 42,
		"clienteId": "7",
		"nome_cliente": "Padaria Central",
		"titulo": "Lançamento",
		"plataforma": "tik tok",
		"formato": "carousel",
		"roteiro": "cena 1",
		"dataAprovacao": "2024-03-15 10:00:00",
		"data_publicacao": "2024-03-20T23:30:00Z",
		"status": "Ideia em Aprovação",
		"needsReapproval": "true",
		"created_at": "2024-03-01T12:00:00Z"
	}`)

	idea := n.Idea(raw, models.IdeaStatusDraft)

	assert.Equal(t, "42", idea.ID)
	assert.Equal(t, "7", idea.ClientID)
	assert.Equal(t, "Padaria Central", idea.ClientName)
	assert.Equal(t, "Lançamento", idea.Title)
	assert.Equal(t, models.PlatformTikTok, idea.Platform)
	assert.Equal(t, models.FormatCarousel, idea.Format)
	assert.Equal(t, "cena 1", idea.Script)
	assert.Equal(t, "2024-03-15", idea.ApprovalDate)
	assert.Equal(t, "2024-03-20", idea.PublishDate)
	assert.Equal(t, models.IdeaStatusPendingApproval, idea.Status)
	assert.True(t, idea.NeedsReapproval)
	assert.Equal(t, "2024-03-01T12:00:00Z", idea.CreatedAt)
}

func TestNormalizeIdea_ClientIDSpellings(t *testing.T) {
	n := NewNormalizer(time.UTC)
	for _, key := range []string{"cliente_id", "clienteId", "cliente", "client_id", "clientId"} {
		idea := n.Idea(map[string]any{key: "c-9"}, models.IdeaStatusDraft)
		assert.Equal(t, "c-9", idea.ClientID, key)
	}

	nested := n.Idea(map[string]any{"cliente": map[string]any{"id": 3.0, "nome": "Loja"}}, models.IdeaStatusDraft)
	assert.Equal(t, "3", nested.ClientID)
	assert.Equal(t, "Loja", nested.ClientName)
}

func TestNormalizeIdea_ApprovalDateSpellings(t *testing.T) {
	n := NewNormalizer(time.UTC)
	for _, key := range []string{"data_aprovacao", "dataAprovacao", "dataaprovacao", "data_aprovação", "Data Aprovação"} {
		idea := n.Idea(map[string]any{key: "2024-03-15"}, models.IdeaStatusDraft)
		assert.Equal(t, "2024-03-15", idea.ApprovalDate, key)
	}

	dateLike := n.Idea(map[string]any{"data_aprovacao": time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)}, models.IdeaStatusDraft)
	assert.Equal(t, "2024-03-15", dateLike.ApprovalDate)

	garbage := n.Idea(map[string]any{"data_aprovacao": "não sei"}, models.IdeaStatusDraft)
	assert.Equal(t, "", garbage.ApprovalDate)
}

func TestNormalizeIdea_StatusFallback(t *testing.T) {
	n := NewNormalizer(time.UTC)
	for _, raw := range []string{"", "arquivada", "IN REVIEW", "null", "ideia em aprovacao!"} {
		idea := n.Idea(map[string]any{"status": raw}, models.IdeaStatusNeedsChanges)
		assert.Equal(t, models.IdeaStatusNeedsChanges, idea.Status, raw)
	}
	pub := n.Publication(map[string]any{"status": "on hold"}, models.PublicationStatusInDesign)
	assert.Equal(t, models.PublicationStatusInDesign, pub.Status)
}

func TestNormalizeIdea_Comments(t *testing.T) {
	n := NewNormalizer(time.UTC)

	plain := n.Idea(map[string]any{"comentarios": "ótimo"}, models.IdeaStatusDraft)
	assert.Equal(t, []models.Comment{{Author: "Cliente", Text: "ótimo"}}, plain.Comments)

	encoded := n.Idea(map[string]any{
		"comentarios": `[{"autor":"Ana","texto":"trocar a foto","data":"2024-03-02T09:00:00Z"}]`,
	}, models.IdeaStatusDraft)
	assert.Equal(t, []models.Comment{{Author: "Ana", Text: "trocar a foto", Timestamp: "2024-03-02T09:00:00Z"}}, encoded.Comments)

	broken := n.Idea(map[string]any{"comentarios": `[{"autor": "Ana"`}, models.IdeaStatusDraft)
	assert.Equal(t, []models.Comment{{Author: "Cliente", Text: `[{"autor": "Ana"`}}, broken.Comments)

	for _, sentinel := range []string{"null", "undefined", " NULL "} {
		absent := n.Idea(map[string]any{"comentarios": sentinel}, models.IdeaStatusDraft)
		assert.Empty(t, absent.Comments, sentinel)
	}

	structured := n.Idea(decode(t, `{"comentarios":[{"author":"Bia","text":"ok"},"solto",{"autor":"X"}]}`), models.IdeaStatusDraft)
	assert.Equal(t, []models.Comment{
		{Author: "Bia", Text: "ok"},
		{Author: "Cliente", Text: "solto"},
	}, structured.Comments)
}

func TestNormalizeIdea_SlideComments(t *testing.T) {
	n := NewNormalizer(time.UTC)

	list := n.Idea(decode(t, `{"comentarios_slides":[
		{"slide":2,"autor":"Cliente","texto":"cor"},
		{"slide":3,"comentarios":["fonte","margem"]}
	]}`), models.IdeaStatusDraft)
	assert.Equal(t, []models.SlideComment{
		{Slide: 2, Comment: models.Comment{Author: "Cliente", Text: "cor"}},
		{Slide: 3, Comment: models.Comment{Author: "Cliente", Text: "fonte"}},
		{Slide: 3, Comment: models.Comment{Author: "Cliente", Text: "margem"}},
	}, list.SlideComments)

	keyed := n.Idea(decode(t, `{"comentariosSlides":{"10":"fim","1":[{"autor":"Ana","texto":"capa"}]}}`), models.IdeaStatusDraft)
	assert.Equal(t, []models.SlideComment{
		{Slide: 1, Comment: models.Comment{Author: "Ana", Text: "capa"}},
		{Slide: 10, Comment: models.Comment{Author: "Cliente", Text: "fim"}},
	}, keyed.SlideComments)
}

func TestNormalizeIdea_MalformedInputDefaults(t *testing.T) {
	n := NewNormalizer(time.UTC)
	for _, raw := range []any{nil, 42.0, "texto", true, []any{1, 2}} {
		idea := n.Idea(raw, models.IdeaStatusDraft)
		assert.Equal(t, models.IdeaStatusDraft, idea.Status)
		assert.Equal(t, models.PlatformInstagram, idea.Platform)
		assert.Equal(t, models.FormatReels, idea.Format)
		assert.NotNil(t, idea.Comments)
		assert.NotNil(t, idea.SlideComments)
		assert.Empty(t, idea.ID)
	}
}

func TestNormalizePublication_MediaMerge(t *testing.T) {
	n := NewNormalizer(time.UTC)

	pub := n.Publication(map[string]any{
		"midia_url":  "a",
		"midia_url1": "b",
		"midia_url3": "a",
		"midia_urls": []any{"c", "b"},
	}, models.PublicationStatusInDesign)

	assert.Equal(t, []string{"a", "b", "c"}, pub.MediaPaths)
	assert.Equal(t, "a", pub.CoverPath)
}

func TestNormalizePublication_MediaFromEncodedListAndSentinels(t *testing.T) {
	n := NewNormalizer(time.UTC)

	pub := n.Publication(map[string]any{
		"midia_url":  "null",
		"midia_url2": "UNDEFINED",
		"midia_url4": "x.png",
		"midiaUrls":  `["y.png", "null", {"path": "z.mp4"}]`,
		"cover_url":  "z.mp4",
	}, models.PublicationStatusInDesign)

	assert.Equal(t, []string{"x.png", "y.png", "z.mp4"}, pub.MediaPaths)
	assert.Equal(t, "z.mp4", pub.CoverPath)
}

func TestNormalizePublication_MediaCap(t *testing.T) {
	n := NewNormalizer(time.UTC)

	list := make([]any, 0, 12)
	for i := 0; i < 12; i++ {
		list = append(list, fmt.Sprintf("slide-%02d.png", i))
	}
	pub := n.Publication(map[string]any{"midia_url": "capa.png", "midia_urls": list}, models.PublicationStatusInDesign)

	assert.Len(t, pub.MediaPaths, models.MaxMediaPaths)
	assert.Equal(t, "capa.png", pub.MediaPaths[0])
	assert.Equal(t, "slide-08.png", pub.MediaPaths[9])
}

func TestNormalizePublication_CoverFallback(t *testing.T) {
	n := NewNormalizer(time.UTC)

	notMember := n.Publication(map[string]any{"midia_urls": []any{"a", "b"}, "cover_url": "z"}, models.PublicationStatusInDesign)
	assert.Equal(t, "a", notMember.CoverPath)

	empty := n.Publication(map[string]any{"cover_url": "z"}, models.PublicationStatusInDesign)
	assert.Equal(t, "", empty.CoverPath)
	assert.NotNil(t, empty.MediaPaths)
	assert.Empty(t, empty.MediaPaths)
}

func TestNormalizePublication_Fields(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	n := NewNormalizer(loc)

	pub := n.Publication(decode(t, `{
		"id": "p1",
		"cliente_id": 7,
		"ideiaId": "i1",
		"title": "Promo",
		"legenda": "Confira",
		"status": "Agendada",
		"dataAgendada": "2024-04-01T15:00:00Z",
		"data_postagem": null,
		"link": "https://instagram.com/p/abc",
		"nota": "8",
		"comentarios": []
	}`), models.PublicationStatusInDesign)

	assert.Equal(t, "p1", pub.ID)
	assert.Equal(t, "7", pub.ClientID)
	assert.Equal(t, "i1", pub.IdeaID)
	assert.Equal(t, "Promo", pub.Title)
	assert.Equal(t, models.PublicationStatusScheduled, pub.Status)
	assert.Equal(t, "2024-04-01T12:00:00-03:00", pub.ScheduledAt)
	assert.Equal(t, "", pub.PostedAt)
	assert.Equal(t, "https://instagram.com/p/abc", pub.PublishedLink)
	require.NotNil(t, pub.Rating)
	assert.Equal(t, 8, *pub.Rating)
	assert.NotNil(t, pub.Comments)

	outOfRange := n.Publication(map[string]any{"nota": 11}, models.PublicationStatusInDesign)
	assert.Nil(t, outOfRange.Rating)
}
