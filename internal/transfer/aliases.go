package transfer

import "fmt"

// Known spellings per canonical field, most preferred first. Adding a new
// upstream spelling is a one-line change here; case, separators and
// accents are already folded by record.lookup.
var (
	idAliases              = []string{"id", "_id", "uuid"}
	clientIDAliases        = []string{"cliente_id", "clienteId", "cliente", "client_id", "clientId"}
	clientNameAliases      = []string{"cliente_nome", "clienteNome", "nome_cliente", "client_name", "clientName"}
	titleAliases           = []string{"titulo", "title", "tema", "nome"}
	platformAliases        = []string{"plataforma", "platform", "rede_social", "rede"}
	formatAliases          = []string{"formato", "format", "tipo"}
	conceptAliases         = []string{"ideia", "conceito", "descricao", "idea", "concept"}
	objectiveAliases       = []string{"objetivo", "objective"}
	ctaAliases             = []string{"cta", "call_to_action", "chamada"}
	scriptAliases          = []string{"roteiro", "script"}
	captionAliases         = []string{"legenda", "caption", "texto_legenda"}
	hashtagsAliases        = []string{"hashtags", "tags"}
	referenceAliases       = []string{"referencia", "referencias", "reference", "link_referencia"}
	statusAliases          = []string{"status", "situacao", "estado"}
	approvalDateAliases    = []string{"data_aprovacao", "dataAprovacao", "dataaprovacao", "approved_at"}
	publishDateAliases     = []string{"data_publicacao", "dataPublicacao", "publish_date"}
	reapprovalAliases      = []string{"needs_reapproval", "needsReapproval", "precisa_reaprovacao", "reaprovacao"}
	commentsAliases        = []string{"comentarios", "comments", "comentario_cliente", "feedback"}
	slideCommentsAliases   = []string{"comentarios_slides", "comentariosSlides", "slide_comments", "comentarios_por_slide"}
	createdAtAliases       = []string{"created_at", "createdAt", "data_criacao", "criado_em"}
	ideaRefAliases         = []string{"ideia_id", "ideiaId", "idea_id", "ideaId", "id_ideia"}
	mediaPrimaryAliases    = []string{"midia_url", "midiaUrl", "media_url", "url_midia", "imagem_url"}
	mediaListAliases       = []string{"midia_urls", "midiaUrls", "media_urls", "midias"}
	coverAliases           = []string{"cover_url", "coverUrl", "capa_url", "capa", "cover"}
	scheduledAtAliases     = []string{"data_agendada", "dataAgendada", "agendado_para", "scheduled_at"}
	postedAtAliases        = []string{"data_postagem", "dataPostagem", "postado_em", "posted_at"}
	publishedLinkAliases   = []string{"link_publicado", "linkPublicado", "url_publicacao", "published_url", "link"}
	ratingAliases          = []string{"nota", "rating", "avaliacao"}
	commentAuthorAliases   = []string{"autor", "author", "usuario", "user", "nome"}
	commentTextAliases     = []string{"texto", "text", "comentario", "mensagem", "message"}
	commentTimeAliases     = []string{"data", "timestamp", "created_at", "date", "criado_em"}
	slideIndexAliases      = []string{"slide", "indice", "index", "slide_index"}
	mediaPathObjectAliases = []string{"path", "url", "midia_url", "src"}
	nestedIDAliases        = []string{"id", "cliente_id"}
	nestedNameAliases      = []string{"nome", "name", "cliente_nome"}
)

// mediaSlotAliases are the spellings of the numbered column midia_url{n}.
func mediaSlotAliases(n int) []string {
	return []string{
		fmt.Sprintf("midia_url%d", n),
		fmt.Sprintf("midiaUrl%d", n),
		fmt.Sprintf("media_url%d", n),
	}
}
