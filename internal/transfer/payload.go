package transfer

import (
	"fmt"
	"time"

	"github.com/maheshrc27/approvals-api/internal/models"
)

// Payload is the body sent to the automation bridge.
type Payload map[string]any

// merge copies extra fields in without touching keys already set.
func (p Payload) merge(extra map[string]any) Payload {
	for k, v := range extra {
		if _, taken := p[k]; taken {
			continue
		}
		p[k] = v
	}
	return p
}

type IdeaExtra struct {
	// Status is the transition target; empty keeps the idea's status.
	Status  models.IdeaStatus
	Comment string
	Fields  map[string]any
}

type PublicationExtra struct {
	Status  models.PublicationStatus
	Comment string
	Rating  *int
	Fields  map[string]any
}

// PayloadBuilder produces the exact shapes the automation backend expects,
// legacy duplicates included: dates go out both as data_* values and as
// camelCase "YYYY-MM-DD HH:mm:ss" local timestamps, and media goes out both
// as a list and as the numbered midia_url1..midia_url10 columns.
type PayloadBuilder struct {
	loc *time.Location
	now func() time.Time
}

func NewPayloadBuilder(loc *time.Location, now func() time.Time) *PayloadBuilder {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &PayloadBuilder{loc: loc, now: now}
}

func (b *PayloadBuilder) Now() time.Time {
	return b.now().In(b.loc)
}

// ApprovalDates returns the approval date for an idea moving to target.
// It is stamped with the current time only when the idea is entering
// design now and has no earlier approval date.
func (b *PayloadBuilder) ApprovalDates(idea models.Idea, target models.IdeaStatus) (dayValue, stamp any) {
	if idea.ApprovalDate != "" {
		return idea.ApprovalDate, localStamp(idea.ApprovalDate, b.loc)
	}
	if target == models.IdeaStatusInDesign {
		now := b.Now()
		return now.Format(DayLayout), formatLocal(now, b.loc)
	}
	return nil, nil
}

func (b *PayloadBuilder) IdeaUpdate(idea models.Idea, extra IdeaExtra) Payload {
	target := extra.Status
	if target == "" {
		target = idea.Status
	}

	approvalDay, approvalStamp := b.ApprovalDates(idea, target)

	var postingStamp any
	if target == models.IdeaStatusPublished {
		postingStamp = formatLocal(b.Now(), b.loc)
	} else {
		postingStamp = localStamp(idea.PublishDate, b.loc)
	}

	p := Payload{
		"id":               nullable(idea.ID),
		"cliente_id":       nullable(idea.ClientID),
		"cliente_nome":     idea.ClientName,
		"titulo":           idea.Title,
		"plataforma":       string(idea.Platform),
		"formato":          string(idea.Format),
		"ideia":            idea.Concept,
		"objetivo":         idea.Objective,
		"cta":              idea.CTA,
		"roteiro":          idea.Script,
		"legenda":          idea.Caption,
		"hashtags":         idea.Hashtags,
		"referencia":       idea.Reference,
		"status":           string(target),
		"needs_reapproval": idea.NeedsReapproval,
		"comentarios":      commentList(idea.Comments),
		"created_at":       nullable(idea.CreatedAt),
		"data_aprovacao":   approvalDay,
		"data_publicacao":  nullable(idea.PublishDate),
		"dataAprovacao":    approvalStamp,
		"dataPostagem":     postingStamp,
		"comentario":       nullable(extra.Comment),
	}
	if len(idea.SlideComments) > 0 {
		p["comentarios_slides"] = idea.SlideComments
	}
	return p.merge(extra.Fields)
}

// PublicationFromIdea builds the create_from_idea body. The new
// publication starts in design with no media.
func (b *PayloadBuilder) PublicationFromIdea(idea models.Idea) Payload {
	_, approvalStamp := b.ApprovalDates(idea, models.IdeaStatusInDesign)

	pub := models.Publication{
		ClientID:  idea.ClientID,
		IdeaID:    idea.ID,
		Title:     idea.Title,
		Platform:  idea.Platform,
		Format:    idea.Format,
		Caption:   idea.Caption,
		Status:    models.PublicationStatusInDesign,
		Comments:  []models.Comment{},
		CreatedAt: b.Now().Format(time.RFC3339),
	}.SetMedia(nil, "")

	p := b.PublicationUpdate(pub, PublicationExtra{})
	p["dataAprovacao"] = approvalStamp
	p["ideia"] = idea.Concept
	p["roteiro"] = idea.Script
	p["hashtags"] = idea.Hashtags
	p["cliente_nome"] = idea.ClientName
	return p
}

func (b *PayloadBuilder) PublicationUpdate(pub models.Publication, extra PublicationExtra) Payload {
	target := extra.Status
	if target == "" {
		target = pub.Status
	}
	pub = pub.SetMedia(pub.MediaPaths, pub.CoverPath)

	// Publications keep no approval date of their own, so the stamp is only
	// sent on the transition into aprovado.
	var approvalStamp any
	if target == models.PublicationStatusApproved && pub.Status != models.PublicationStatusApproved {
		approvalStamp = formatLocal(b.Now(), b.loc)
	}

	var postingStamp any
	if target == models.PublicationStatusPublished {
		postingStamp = formatLocal(b.Now(), b.loc)
	} else {
		postingStamp = localStamp(pub.PostedAt, b.loc)
	}

	var primary any
	if len(pub.MediaPaths) > 0 {
		primary = pub.MediaPaths[0]
	}

	var rating any
	switch {
	case extra.Rating != nil:
		rating = *extra.Rating
	case pub.Rating != nil:
		rating = *pub.Rating
	}

	p := Payload{
		"id":             nullable(pub.ID),
		"cliente_id":     nullable(pub.ClientID),
		"ideia_id":       nullable(pub.IdeaID),
		"titulo":         pub.Title,
		"plataforma":     string(pub.Platform),
		"formato":        string(pub.Format),
		"legenda":        pub.Caption,
		"midia_url":      primary,
		"midia_urls":     append([]string{}, pub.MediaPaths...),
		"cover_url":      nullable(pub.CoverPath),
		"status":         string(target),
		"data_agendada":  nullable(pub.ScheduledAt),
		"data_postagem":  nullable(pub.PostedAt),
		"link_publicado": nullable(pub.PublishedLink),
		"comentarios":    commentList(pub.Comments),
		"created_at":     nullable(pub.CreatedAt),
		"dataAprovacao":  approvalStamp,
		"dataPostagem":   postingStamp,
		"dataAgendada":   localStamp(pub.ScheduledAt, b.loc),
		"comentario":     nullable(extra.Comment),
		"nota":           rating,
	}
	for n := 1; n <= models.MaxMediaPaths; n++ {
		var slot any
		if n <= len(pub.MediaPaths) {
			slot = pub.MediaPaths[n-1]
		}
		p[fmt.Sprintf("midia_url%d", n)] = slot
	}
	return p.merge(extra.Fields)
}

func commentList(c []models.Comment) []models.Comment {
	if c == nil {
		return []models.Comment{}
	}
	return c
}
