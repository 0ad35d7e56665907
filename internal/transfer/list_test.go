package transfer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdeaList_EnvelopeShapesAgree(t *testing.T) {
	n := NewNormalizer(time.UTC)
	x := map[string]any{"id": "1", "titulo": "A", "status": "rascunho"}

	direct := n.IdeaList([]any{x}, models.IdeaStatusDraft)
	batched := n.IdeaList([]any{map[string]any{"ideias": []any{x}}}, models.IdeaStatusDraft)
	enveloped := n.IdeaList(map[string]any{"data": map[string]any{"ideias": []any{x}}}, models.IdeaStatusDraft)

	require.Len(t, direct, 1)
	assert.Equal(t, direct, batched)
	assert.Equal(t, direct, enveloped)
	assert.Equal(t, "A", direct[0].Title)
}

func TestIdeaList_AlternateKeysAndSingleObject(t *testing.T) {
	n := NewNormalizer(time.UTC)

	for _, key := range []string{"ideias", "publicacoes", "publications", "rows", "items", "list"} {
		got := n.IdeaList(map[string]any{key: []any{map[string]any{"id": "1"}, map[string]any{"id": "2"}}}, models.IdeaStatusDraft)
		require.Len(t, got, 2, key)
		assert.Equal(t, "1", got[0].ID)
		assert.Equal(t, "2", got[1].ID)
	}

	single := n.IdeaList(map[string]any{"id": "solo"}, models.IdeaStatusDraft)
	require.Len(t, single, 1)
	assert.Equal(t, "solo", single[0].ID)
}

func TestIdeaList_ScalarsYieldEmpty(t *testing.T) {
	n := NewNormalizer(time.UTC)
	for _, raw := range []any{nil, 1.0, "ideias", true} {
		got := n.IdeaList(raw, models.IdeaStatusDraft)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestPublicationList_FlattensPerClientBatchesInOrder(t *testing.T) {
	n := NewNormalizer(time.UTC)

	raw := decode(t, `[
		{"cliente_id": "c1", "publicacoes": [{"id": "p1"}, {"id": "p2"}]},
		{"id": "p3"},
		{"cliente_id": "c2", "publicacoes": [{"id": "p4"}]},
		"lixo"
	]`)

	got := n.PublicationList(raw, models.PublicationStatusInDesign)
	ids := make([]string, 0, len(got))
	clients := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
		clients = append(clients, p.ClientID)
	}
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids)
	assert.Equal(t, []string{"c1", "c1", "", "c2"}, clients)
}

func TestIdeaList_BatchClientDoesNotOverrideChild(t *testing.T) {
	n := NewNormalizer(time.UTC)

	raw := decode(t, `{"cliente_id": "c1", "cliente_nome": "Loja Azul", "ideias": [
		{"id": "i1"},
		{"id": "i2", "clienteId": "c9"}
	]}`)

	got := n.IdeaList(raw, models.IdeaStatusDraft)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ClientID)
	assert.Equal(t, "Loja Azul", got[0].ClientName)
	assert.Equal(t, "c9", got[1].ClientID)
	assert.Equal(t, "Loja Azul", got[1].ClientName)
}

func TestPublicationList_DataDateIsNotAnEnvelope(t *testing.T) {
	n := NewNormalizer(time.UTC)

	raw := decode(t, `[
		{"id": "p1", "titulo": "Post", "data": "2024-03-15"},
		{"id": "p2"}
	]`)

	got := n.PublicationList(raw, models.PublicationStatusInDesign)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "Post", got[0].Title)
	assert.Equal(t, "p2", got[1].ID)

	single := n.IdeaList(decode(t, `{"id": "i1", "data": null}`), models.IdeaStatusDraft)
	require.Len(t, single, 1)
	assert.Equal(t, "i1", single[0].ID)
}

func TestPublicationList_RawJSON(t *testing.T) {
	n := NewNormalizer(time.UTC)
	got := n.PublicationList(json.RawMessage(`{"data":[{"id":"p1","status":"publicado"}]}`), models.PublicationStatusInDesign)
	require.Len(t, got, 1)
	assert.Equal(t, models.PublicationStatusPublished, got[0].Status)
}

func TestIdeaList_NormalizedOutputIsStable(t *testing.T) {
	n := NewNormalizer(time.FixedZone("BRT", -3*3600))

	first := n.IdeaList(decode(t, `{"data": [{
		"id": 9,
		"cliente": "c1",
		"titulo": "Dia das mães",
		"formato": "imagem única",
		"data_aprovacao": "2024-05-01T02:00:00Z",
		"comentarios": "amei",
		"comentarios_slides": {"2": "trocar cor"},
		"created_at": "2024-04-28T10:00:00Z",
		"status": "aprovada"
	}]}`), models.IdeaStatusDraft)

	b, err := json.Marshal(first)
	require.NoError(t, err)
	second := n.IdeaList(decode(t, string(b)), models.IdeaStatusDraft)

	assert.Equal(t, first, second)
}

func TestPublicationList_NormalizedOutputIsStable(t *testing.T) {
	n := NewNormalizer(time.UTC)

	first := n.PublicationList(decode(t, `[{
		"id": "p1",
		"midia_url": "a.png",
		"midia_url2": "b.png",
		"midia_urls": "[\"c.png\"]",
		"cover_url": "b.png",
		"data_agendada": "2024-06-01 09:00",
		"nota": 9,
		"status": "agendado"
	}]`), models.PublicationStatusInDesign)

	b, err := json.Marshal(first)
	require.NoError(t, err)
	second := n.PublicationList(decode(t, string(b)), models.PublicationStatusInDesign)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a.png", "b.png", "c.png"}, second[0].MediaPaths)
}
