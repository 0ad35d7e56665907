package models

type Idea struct {
	ID              string         `json:"id"`
	ClientID        string         `json:"cliente_id"`
	ClientName      string         `json:"cliente_nome"`
	Title           string         `json:"titulo"`
	Platform        Platform       `json:"plataforma"`
	Format          Format         `json:"formato"`
	Concept         string         `json:"ideia"`
	Objective       string         `json:"objetivo"`
	CTA             string         `json:"cta"`
	Script          string         `json:"roteiro"`
	Caption         string         `json:"legenda"`
	Hashtags        string         `json:"hashtags"`
	Reference       string         `json:"referencia"`
	ApprovalDate    string         `json:"data_aprovacao"`  // YYYY-MM-DD
	PublishDate     string         `json:"data_publicacao"` // YYYY-MM-DD
	Status          IdeaStatus     `json:"status"`
	NeedsReapproval bool           `json:"needs_reapproval"`
	Comments        []Comment      `json:"comentarios"`
	SlideComments   []SlideComment `json:"comentarios_slides"`
	CreatedAt       string         `json:"created_at"`
}

// WithContent returns a copy of i carrying the editable content fields of
// from. Identity, status and comment history are left alone.
func (i Idea) WithContent(from Idea) Idea {
	i.Title = from.Title
	i.Platform = from.Platform
	i.Format = from.Format
	i.Concept = from.Concept
	i.Objective = from.Objective
	i.CTA = from.CTA
	i.Script = from.Script
	i.Caption = from.Caption
	i.Hashtags = from.Hashtags
	i.Reference = from.Reference
	i.PublishDate = from.PublishDate
	return i
}

// SeenByClient reports whether the client has already been shown the idea,
// which is when a content edit calls for re-approval.
func (i Idea) SeenByClient() bool {
	switch i.Status {
	case IdeaStatusPendingApproval, IdeaStatusApproved, IdeaStatusInDesign:
		return true
	}
	return false
}

func (i Idea) AppendComment(c Comment) Idea {
	comments := make([]Comment, 0, len(i.Comments)+1)
	comments = append(comments, i.Comments...)
	i.Comments = append(comments, c)
	return i
}
