package transfer

import (
	"time"

	"github.com/maheshrc27/approvals-api/internal/models"
)

// Normalizer turns loosely-typed bridge payloads into canonical entities.
// It never fails: fields it cannot read take their zero value ("", [] or
// nil) and unknown statuses take the caller's fallback.
type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

func (n *Normalizer) Location() *time.Location {
	return n.loc
}

func (n *Normalizer) Idea(raw any, fallback models.IdeaStatus) models.Idea {
	r := newRecord(raw)

	clientID, clientName := r.ref(clientIDAliases...)
	if name := r.str(clientNameAliases...); name != "" {
		clientName = name
	}

	commentsRaw, _ := r.value(commentsAliases...)
	slidesRaw, _ := r.value(slideCommentsAliases...)

	return models.Idea{
		ID:              r.str(idAliases...),
		ClientID:        clientID,
		ClientName:      clientName,
		Title:           r.str(titleAliases...),
		Platform:        models.ParsePlatform(r.str(platformAliases...)),
		Format:          models.ParseFormat(r.str(formatAliases...)),
		Concept:         r.str(conceptAliases...),
		Objective:       r.str(objectiveAliases...),
		CTA:             r.str(ctaAliases...),
		Script:          r.str(scriptAliases...),
		Caption:         r.str(captionAliases...),
		Hashtags:        r.str(hashtagsAliases...),
		Reference:       r.str(referenceAliases...),
		ApprovalDate:    r.day(n.loc, approvalDateAliases...),
		PublishDate:     r.day(n.loc, publishDateAliases...),
		Status:          models.ParseIdeaStatus(r.str(statusAliases...), fallback),
		NeedsReapproval: r.boolean(reapprovalAliases...),
		Comments:        comments(commentsRaw, n.loc),
		SlideComments:   slideComments(slidesRaw, n.loc),
		CreatedAt:       r.instant(n.loc, createdAtAliases...),
	}
}

func (n *Normalizer) Publication(raw any, fallback models.PublicationStatus) models.Publication {
	r := newRecord(raw)

	clientID, _ := r.ref(clientIDAliases...)
	ideaID, _ := r.ref(ideaRefAliases...)
	commentsRaw, _ := r.value(commentsAliases...)

	p := models.Publication{
		ID:            r.str(idAliases...),
		ClientID:      clientID,
		IdeaID:        ideaID,
		Title:         r.str(titleAliases...),
		Platform:      models.ParsePlatform(r.str(platformAliases...)),
		Format:        models.ParseFormat(r.str(formatAliases...)),
		Caption:       r.str(captionAliases...),
		Status:        models.ParsePublicationStatus(r.str(statusAliases...), fallback),
		ScheduledAt:   r.instant(n.loc, scheduledAtAliases...),
		PostedAt:      r.instant(n.loc, postedAtAliases...),
		PublishedLink: r.str(publishedLinkAliases...),
		Comments:      comments(commentsRaw, n.loc),
		Rating:        r.rating(ratingAliases...),
		CreatedAt:     r.instant(n.loc, createdAtAliases...),
	}
	return p.SetMedia(r.mediaPaths(), r.path(coverAliases...))
}
